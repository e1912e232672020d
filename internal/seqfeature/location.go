package seqfeature

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrLocation is returned for location strings outside the supported
// grammar.
var ErrLocation = errors.New("seqfeature: bad location")

// Part is one contiguous region of a parsed location.
type Part struct {
	Location
	Strand int
}

// ParseLocation parses a GenBank feature location such as
// "complement(join(<1..200,300..>450))". compound is true when the location
// was a join or order, even of a single region.
func ParseLocation(s string) (parts []Part, compound bool, err error) {
	p := &locParser{s: strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)}
	parts, compound, err = p.location(1)
	if err != nil {
		return nil, false, fmt.Errorf("%w %q: %v", ErrLocation, s, err)
	}
	if p.i != len(p.s) {
		return nil, false, fmt.Errorf("%w %q: trailing input at %d", ErrLocation, s, p.i)
	}
	return parts, compound, nil
}

type locParser struct {
	s string
	i int
}

func (p *locParser) eat(tok string) bool {
	if strings.HasPrefix(p.s[p.i:], tok) {
		p.i += len(tok)
		return true
	}
	return false
}

func (p *locParser) expect(tok string) error {
	if !p.eat(tok) {
		return fmt.Errorf("expected %q at %d", tok, p.i)
	}
	return nil
}

func (p *locParser) location(strand int) ([]Part, bool, error) {
	switch {
	case p.eat("complement("):
		parts, compound, err := p.location(-strand)
		if err != nil {
			return nil, false, err
		}
		// complement(join(a,b)) reads as b then a on the other strand
		for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
			parts[i], parts[j] = parts[j], parts[i]
		}
		return parts, compound, p.expect(")")
	case p.eat("join("), p.eat("order("):
		var parts []Part
		for {
			sub, _, err := p.location(strand)
			if err != nil {
				return nil, false, err
			}
			parts = append(parts, sub...)
			if !p.eat(",") {
				break
			}
		}
		return parts, true, p.expect(")")
	}
	part, err := p.span(strand)
	if err != nil {
		return nil, false, err
	}
	return []Part{part}, false, nil
}

func (p *locParser) span(strand int) (Part, error) {
	first, err := p.position()
	if err != nil {
		return Part{}, err
	}
	switch {
	case p.eat(".."):
		last, err := p.position()
		if err != nil {
			return Part{}, err
		}
		return Part{Location: Location{Start: toStart(first), End: last}, Strand: strand}, nil
	case p.eat("^"):
		if first.Kind != Exact {
			return Part{}, fmt.Errorf("fuzzy between-site at %d", p.i)
		}
		last, err := p.number()
		if err != nil {
			return Part{}, err
		}
		site := Position{Kind: Between, Pos: first.Pos, Ext: last - first.Pos}
		return Part{Location: Location{Start: site, End: site}, Strand: strand}, nil
	}
	return Part{Location: Location{Start: toStart(first), End: first}, Strand: strand}, nil
}

// toStart converts a one-based first base to a zero-based start.
func toStart(p Position) Position {
	p.Pos--
	return p
}

func (p *locParser) position() (Position, error) {
	switch {
	case p.eat("<"):
		n, err := p.number()
		return Position{Kind: Before, Pos: n}, err
	case p.eat(">"):
		n, err := p.number()
		return Position{Kind: After, Pos: n}, err
	case p.eat("("):
		lo, err := p.number()
		if err != nil {
			return Position{}, err
		}
		if err := p.expect("."); err != nil {
			return Position{}, err
		}
		hi, err := p.number()
		if err != nil {
			return Position{}, err
		}
		if err := p.expect(")"); err != nil {
			return Position{}, err
		}
		return Position{Kind: Within, Pos: lo, Ext: hi - lo}, nil
	}
	n, err := p.number()
	return Position{Kind: Exact, Pos: n}, err
}

func (p *locParser) number() (int, error) {
	j := p.i
	for j < len(p.s) && p.s[j] >= '0' && p.s[j] <= '9' {
		j++
	}
	if j == p.i {
		return 0, fmt.Errorf("expected a number at %d", p.i)
	}
	n, err := strconv.Atoi(p.s[p.i:j])
	if err != nil {
		return 0, err
	}
	p.i = j
	return n, nil
}
