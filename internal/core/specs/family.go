package specs

// Family groups accessory types by the asset spec field they affect.
type Family int

const (
	FamilyNone Family = iota
	FamilyRAM
	FamilyStorage
)

// storageTypes includes the misspelt "Othe Storage" still present in stored data.
var storageTypes = map[string]struct{}{
	"Storage":       {},
	"HDD":           {},
	"SSD":           {},
	"Othe Storage":  {},
	"Other Storage": {},
}

func FamilyOf(accessoryType string) Family {
	if accessoryType == "RAM" {
		return FamilyRAM
	}
	if _, ok := storageTypes[accessoryType]; ok {
		return FamilyStorage
	}
	return FamilyNone
}
