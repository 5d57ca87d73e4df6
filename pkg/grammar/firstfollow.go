package grammar

// keySet is a set of TerminalKey, plus a distinguished epsilon flag
// kept out-of-band so TerminalKey itself never needs an epsilon
// variant.
type keySet struct {
	epsilon bool
	keys    map[TerminalKey]bool
}

func newKeySet() *keySet { return &keySet{keys: make(map[TerminalKey]bool)} }

// add reports whether inserting k changed the set.
func (s *keySet) add(k TerminalKey) bool {
	if s.keys[k] {
		return false
	}
	s.keys[k] = true
	return true
}

func (s *keySet) addEpsilon() bool {
	if s.epsilon {
		return false
	}
	s.epsilon = true
	return true
}

func (s *keySet) addAllExceptEpsilon(other *keySet) bool {
	changed := false
	for k := range other.keys {
		if s.add(k) {
			changed = true
		}
	}
	return changed
}

// Sets bundles the computed FIRST and FOLLOW tables for the whole
// grammar.
type Sets struct {
	First  map[NonTerminal]*keySet
	Follow map[NonTerminal]*keySet
}

// firstOfSymbol adds the FIRST set of a single RHS symbol to out and
// reports whether the symbol is nullable: a terminal's FIRST is itself,
// a non-terminal's is looked up, epsilon is nullable with no keys.
func (s *Sets) firstOfSymbol(sym Symbol, out *keySet) (nullable bool) {
	switch sym.SymKind {
	case SymLiteral, SymClass:
		out.add(sym.Key())
		return false
	case SymEpsilon:
		return true
	default:
		fs := s.First[sym.NT]
		for k := range fs.keys {
			out.add(k)
		}
		return fs.epsilon
	}
}

// ComputeSets runs the FIRST and FOLLOW fixed-point algorithms over
// Rules, per the grammar's classical definitions: FIRST(X1 X2 ... Xn)
// folds left through each symbol, stopping the fold (but still
// unioning) at the first non-nullable symbol; FOLLOW propagates
// FIRST(beta) into FOLLOW(B) for every A -> alpha B beta, and
// FOLLOW(A) into FOLLOW(B) when beta is nullable or empty.
func ComputeSets() *Sets {
	s := &Sets{First: make(map[NonTerminal]*keySet), Follow: make(map[NonTerminal]*keySet)}
	for n := NonTerminal(0); n < nonTerminalCount; n++ {
		s.First[n] = newKeySet()
		s.Follow[n] = newKeySet()
	}
	s.Follow[Program].add(End)

	for {
		changed := false

		for _, p := range Rules {
			firstA := s.First[p.LHS]
			allNullable := true
			for _, sym := range p.RHS {
				tmp := newKeySet()
				nullable := s.firstOfSymbol(sym, tmp)
				if firstA.addAllExceptEpsilon(tmp) {
					changed = true
				}
				if !nullable {
					allNullable = false
					break
				}
			}
			if allNullable {
				if firstA.addEpsilon() {
					changed = true
				}
			}
		}

		for _, p := range Rules {
			for i, sym := range p.RHS {
				if sym.SymKind != SymNonTerminal {
					continue
				}
				followB := s.Follow[sym.NT]
				betaNullable := true
				for j := i + 1; j < len(p.RHS); j++ {
					beta := p.RHS[j]
					tmp := newKeySet()
					nullable := s.firstOfSymbol(beta, tmp)
					if followB.addAllExceptEpsilon(tmp) {
						changed = true
					}
					if !nullable {
						betaNullable = false
						break
					}
				}
				if betaNullable {
					if followB.addAllExceptEpsilon(s.Follow[p.LHS]) {
						changed = true
					}
				}
			}
		}

		if !changed {
			break
		}
	}

	return s
}

// FirstOf returns the FIRST set of a non-terminal as a terminal-key
// slice plus whether it is nullable.
func (s *Sets) FirstOf(n NonTerminal) ([]TerminalKey, bool) {
	set := s.First[n]
	out := make([]TerminalKey, 0, len(set.keys))
	for k := range set.keys {
		out = append(out, k)
	}
	return out, set.epsilon
}

// FollowOf returns the FOLLOW set of a non-terminal as a terminal-key
// slice.
func (s *Sets) FollowOf(n NonTerminal) []TerminalKey {
	set := s.Follow[n]
	out := make([]TerminalKey, 0, len(set.keys))
	for k := range set.keys {
		out = append(out, k)
	}
	return out
}

// FirstOfRHS computes FIRST of a whole right-hand side (used directly
// by the parse table builder, which needs FIRST(alpha) for the RHS of
// a production rather than FIRST of a single symbol or non-terminal).
func (s *Sets) FirstOfRHS(rhs []Symbol) ([]TerminalKey, bool) {
	tmp := newKeySet()
	allNullable := true
	for _, sym := range rhs {
		nullable := s.firstOfSymbol(sym, tmp)
		if !nullable {
			allNullable = false
			break
		}
	}
	out := make([]TerminalKey, 0, len(tmp.keys))
	for k := range tmp.keys {
		out = append(out, k)
	}
	return out, allNullable
}
