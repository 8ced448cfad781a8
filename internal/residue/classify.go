package residue

// Class labels an integer by its residue mod 9.
type Class int

const (
	Chaotic Class = iota
	Resonant
)

func (c Class) String() string {
	switch c {
	case Resonant:
		return "resonant"
	case Chaotic:
		return "chaotic"
	default:
		return "unknown"
	}
}

// ResonantResidues are the residues mod 9 classified as resonant.
var ResonantResidues = [...]int64{0, 3, 6, 7}

// ChaoticResidues are the complement of ResonantResidues in [0, 9).
var ChaoticResidues = [...]int64{1, 2, 4, 5, 8}

// resonantMask[r] is true when r mod 9 is resonant.
var resonantMask = [9]bool{0: true, 3: true, 6: true, 7: true}

// ClassifyMod9 returns Resonant when Mod(x, 9) ∈ {0,3,6,7}, else Chaotic.
func ClassifyMod9(x int64) Class {
	if resonantMask[Mod(x, 9)] {
		return Resonant
	}
	return Chaotic
}

// Tally counts resonant and chaotic integers in [lo, hi).
func Tally(lo, hi int64) (resonant, chaotic int64) {
	for x := lo; x < hi; x++ {
		if ClassifyMod9(x) == Resonant {
			resonant++
		} else {
			chaotic++
		}
	}
	return resonant, chaotic
}
