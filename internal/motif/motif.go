// Package motif holds the sequence motif model filled in by motif-discovery
// report parsers.
package motif

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"
)

var (
	// ErrLength is returned when an instance or mask disagrees with the
	// motif width fixed by the first instance.
	ErrLength = errors.New("motif: length mismatch")
	// ErrMask is returned for mask characters other than '*' and ' '.
	ErrMask = errors.New("motif: invalid mask character")
)

var bases = []byte("ACGT")

// Motif is an ungapped DNA motif: its aligned instances, the mask of
// significant columns and the score reported by the discovery tool.
type Motif struct {
	Alphabet  alphabet.Alphabet
	Instances []*linear.Seq
	Mask      []bool
	Score     float64
	HasScore  bool
	Length    int
}

// New returns an empty motif over the unambiguous DNA alphabet.
func New() *Motif {
	return &Motif{Alphabet: alphabet.DNA}
}

func (m *Motif) checkLength(n int) error {
	if m.Length == 0 && len(m.Instances) == 0 && m.Mask == nil {
		m.Length = n
		return nil
	}
	if m.Length != n {
		return fmt.Errorf("%w: got %d, want %d", ErrLength, n, m.Length)
	}
	return nil
}

// AddInstance appends one aligned site.
func (m *Motif) AddInstance(site string) error {
	if err := m.checkLength(len(site)); err != nil {
		return err
	}
	id := strconv.Itoa(len(m.Instances))
	m.Instances = append(m.Instances, linear.NewSeq(id, alphabet.BytesToLetters([]byte(site)), m.Alphabet))
	return nil
}

// SetMask records which columns are significant.
func (m *Motif) SetMask(mask string) error {
	if err := m.checkLength(len(mask)); err != nil {
		return err
	}
	out := make([]bool, len(mask))
	for i := 0; i < len(mask); i++ {
		switch mask[i] {
		case '*':
			out[i] = true
		case ' ':
		default:
			return fmt.Errorf("%w %q", ErrMask, mask[i])
		}
	}
	m.Mask = out
	return nil
}

// SetScore records the motif score.
func (m *Motif) SetScore(score float64) {
	m.Score = score
	m.HasScore = true
}

// Sites returns the instances as plain strings.
func (m *Motif) Sites() []string {
	out := make([]string, len(m.Instances))
	for i, s := range m.Instances {
		out[i] = string(alphabet.LettersToBytes(s.Seq))
	}
	return out
}

// Counts returns, per column, how often each of A, C, G and T occurs.
// Lower case letters count as their upper case form; other letters are
// ignored.
func (m *Motif) Counts() []map[byte]int {
	counts := make([]map[byte]int, m.Length)
	for i := range counts {
		counts[i] = map[byte]int{'A': 0, 'C': 0, 'G': 0, 'T': 0}
	}
	for _, s := range m.Instances {
		for i, l := range s.Seq {
			if i >= m.Length {
				break
			}
			b := byte(l)
			if b >= 'a' && b <= 'z' {
				b -= 'a' - 'A'
			}
			if _, ok := counts[i][b]; ok {
				counts[i][b]++
			}
		}
	}
	return counts
}

// Consensus returns the most frequent base of every column. Ties go to the
// base that comes first in ACGT order.
func (m *Motif) Consensus() string {
	counts := m.Counts()
	out := make([]byte, len(counts))
	for i, c := range counts {
		best := bases[0]
		for _, b := range bases[1:] {
			if c[b] > c[best] {
				best = b
			}
		}
		out[i] = best
	}
	return string(out)
}
