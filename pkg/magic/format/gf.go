package format

import "fmt"

// GF identifies a Guardian Force in the fixed order used by the
// compatibility table of a magic record.
type GF uint8

const (
	GFQuezacotl GF = iota
	GFShiva
	GFIfrit
	GFSiren
	GFBrothers
	GFDiablos
	GFCarbuncle
	GFLeviathan
	GFPandemona
	GFCerberus
	GFAlexander
	GFDoomtrain
	GFBahamut
	GFCactuar
	GFTonberry
	GFEden
)

// GFCount is the number of entries in a compatibility table.
const GFCount = 16

var gfNames = nameTable{
	"Quezacotl", "Shiva", "Ifrit", "Siren", "Brothers", "Diablos", "Carbuncle", "Leviathan",
	"Pandemona", "Cerberus", "Alexander", "Doomtrain", "Bahamut", "Cactuar", "Tonberry", "Eden",
}

func (g GF) String() string { return gfNames.name(int(g), "GF") }

// ParseGF looks up a GF by name.
func ParseGF(name string) (GF, error) {
	if i, ok := gfNames.lookup(name); ok {
		return GF(i), nil
	}
	return 0, fmt.Errorf("unknown GF %q", name)
}

// AllGFs returns the GFs in table order.
func AllGFs() []GF {
	gfs := make([]GF, GFCount)
	for i := range gfs {
		gfs[i] = GF(i)
	}
	return gfs
}

// GFCompatibility holds one compatibility byte per GF.
type GFCompatibility [GFCount]uint8

// Get returns the compatibility value for g.
func (c GFCompatibility) Get(g GF) uint8 { return c[g%GFCount] }

// With returns a copy with g's value replaced.
func (c GFCompatibility) With(g GF, v uint8) GFCompatibility {
	c[g%GFCount] = v
	return c
}
