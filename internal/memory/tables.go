package memory

import "github.com/tatianab/pokemon-agent/internal/models"

// SpeciesName resolves a Gen 1 internal species index. Unknown and
// MissingNo. slots resolve to models.PlaceholderName.
func SpeciesName(id uint8) string {
	if name, ok := species[id]; ok {
		return name
	}
	return models.PlaceholderName
}

// ItemName resolves an item id, with the same unknown-id tolerance.
func ItemName(id uint8) string {
	if name, ok := items[id]; ok {
		return name
	}
	return models.PlaceholderName
}

// LocationName resolves a map id. Maps missing from the table are "".
func LocationName(id uint8) string {
	return locations[id]
}

var species = map[uint8]string{
	0x01: "RHYDON", 0x02: "KANGASKHAN", 0x03: "NIDORAN♂", 0x04: "CLEFAIRY",
	0x05: "SPEAROW", 0x06: "VOLTORB", 0x07: "NIDOKING", 0x08: "SLOWBRO",
	0x09: "IVYSAUR", 0x0A: "EXEGGUTOR", 0x0B: "LICKITUNG", 0x0C: "EXEGGCUTE",
	0x0D: "GRIMER", 0x0E: "GENGAR", 0x0F: "NIDORAN♀", 0x10: "NIDOQUEEN",
	0x11: "CUBONE", 0x12: "RHYHORN", 0x13: "LAPRAS", 0x14: "ARCANINE",
	0x15: "MEW", 0x16: "GYARADOS", 0x17: "SHELLDER", 0x18: "TENTACOOL",
	0x19: "GASTLY", 0x1A: "SCYTHER", 0x1B: "STARYU", 0x1C: "BLASTOISE",
	0x1D: "PINSIR", 0x1E: "TANGELA", 0x21: "GROWLITHE", 0x22: "ONIX",
	0x23: "FEAROW", 0x24: "PIDGEY", 0x25: "SLOWPOKE", 0x26: "KADABRA",
	0x27: "GRAVELER", 0x28: "CHANSEY", 0x29: "MACHOKE", 0x2A: "MR.MIME",
	0x2B: "HITMONLEE", 0x2C: "HITMONCHAN", 0x2D: "ARBOK", 0x2E: "PARASECT",
	0x2F: "PSYDUCK", 0x30: "DROWZEE", 0x31: "GOLEM", 0x33: "MAGMAR",
	0x35: "ELECTABUZZ", 0x36: "MAGNETON", 0x37: "KOFFING", 0x39: "MANKEY",
	0x3A: "SEEL", 0x3B: "DIGLETT", 0x3C: "TAUROS", 0x40: "FARFETCH'D",
	0x41: "VENONAT", 0x42: "DRAGONITE", 0x46: "DODUO", 0x47: "POLIWAG",
	0x48: "JYNX", 0x49: "MOLTRES", 0x4A: "ARTICUNO", 0x4B: "ZAPDOS",
	0x4C: "DITTO", 0x4D: "MEOWTH", 0x4E: "KRABBY", 0x52: "VULPIX",
	0x53: "NINETALES", 0x54: "PIKACHU", 0x55: "RAICHU", 0x58: "DRATINI",
	0x59: "DRAGONAIR", 0x5A: "KABUTO", 0x5B: "KABUTOPS", 0x5C: "HORSEA",
	0x5D: "SEADRA", 0x60: "SANDSHREW", 0x61: "SANDSLASH", 0x62: "OMANYTE",
	0x63: "OMASTAR", 0x64: "JIGGLYPUFF", 0x65: "WIGGLYTUFF", 0x66: "EEVEE",
	0x67: "FLAREON", 0x68: "JOLTEON", 0x69: "VAPOREON", 0x6A: "MACHOP",
	0x6B: "ZUBAT", 0x6C: "EKANS", 0x6D: "PARAS", 0x6E: "POLIWHIRL",
	0x6F: "POLIWRATH", 0x70: "WEEDLE", 0x71: "KAKUNA", 0x72: "BEEDRILL",
	0x74: "DODRIO", 0x75: "PRIMEAPE", 0x76: "DUGTRIO", 0x77: "VENOMOTH",
	0x78: "DEWGONG", 0x7B: "CATERPIE", 0x7C: "METAPOD", 0x7D: "BUTTERFREE",
	0x7E: "MACHAMP", 0x80: "GOLDUCK", 0x81: "HYPNO", 0x82: "GOLBAT",
	0x83: "MEWTWO", 0x84: "SNORLAX", 0x85: "MAGIKARP", 0x88: "MUK",
	0x8A: "KINGLER", 0x8B: "CLOYSTER", 0x8D: "ELECTRODE", 0x8E: "CLEFABLE",
	0x8F: "WEEZING", 0x90: "PERSIAN", 0x91: "MAROWAK", 0x93: "HAUNTER",
	0x94: "ABRA", 0x95: "ALAKAZAM", 0x96: "PIDGEOTTO", 0x97: "PIDGEOT",
	0x98: "STARMIE", 0x99: "BULBASAUR", 0x9A: "VENUSAUR", 0x9B: "TENTACRUEL",
	0x9D: "GOLDEEN", 0x9E: "SEAKING", 0xA3: "PONYTA", 0xA4: "RAPIDASH",
	0xA5: "RATTATA", 0xA6: "RATICATE", 0xA7: "NIDORINO", 0xA8: "NIDORINA",
	0xA9: "GEODUDE", 0xAA: "PORYGON", 0xAB: "AERODACTYL", 0xAD: "MAGNEMITE",
	0xB0: "CHARMANDER", 0xB1: "SQUIRTLE", 0xB2: "CHARMELEON", 0xB3: "WARTORTLE",
	0xB4: "CHARIZARD", 0xB9: "ODDISH", 0xBA: "GLOOM", 0xBB: "VILEPLUME",
	0xBC: "BELLSPROUT", 0xBD: "WEEPINBELL", 0xBE: "VICTREEBEL",
}

var items = map[uint8]string{
	0x01: "MASTER BALL", 0x02: "ULTRA BALL", 0x03: "GREAT BALL", 0x04: "POKé BALL",
	0x05: "TOWN MAP", 0x06: "BICYCLE", 0x08: "SAFARI BALL", 0x09: "POKéDEX",
	0x0A: "MOON STONE", 0x0B: "ANTIDOTE", 0x0C: "BURN HEAL", 0x0D: "ICE HEAL",
	0x0E: "AWAKENING", 0x0F: "PARLYZ HEAL", 0x10: "FULL RESTORE", 0x11: "MAX POTION",
	0x12: "HYPER POTION", 0x13: "SUPER POTION", 0x14: "POTION",
	0x1D: "ESCAPE ROPE", 0x1E: "REPEL", 0x20: "FIRE STONE", 0x21: "THUNDERSTONE",
	0x22: "WATER STONE", 0x23: "HP UP", 0x24: "PROTEIN", 0x25: "IRON",
	0x26: "CARBOS", 0x27: "CALCIUM", 0x28: "RARE CANDY", 0x2D: "NUGGET",
	0x2F: "POKé DOLL", 0x30: "FULL HEAL", 0x31: "REVIVE", 0x32: "MAX REVIVE",
	0x35: "SUPER REPEL", 0x36: "MAX REPEL", 0x38: "FRESH WATER", 0x39: "SODA POP",
	0x3A: "LEMONADE", 0x3B: "S.S.TICKET", 0x3C: "GOLD TEETH", 0x3F: "OAK's PARCEL",
	0x40: "ITEMFINDER", 0x41: "SILPH SCOPE", 0x42: "POKé FLUTE", 0x45: "EXP.ALL",
	0x46: "OLD ROD", 0x47: "GOOD ROD", 0x48: "SUPER ROD", 0x49: "PP UP",
	0x4A: "ETHER", 0x4B: "MAX ETHER", 0x4C: "ELIXER", 0x4D: "MAX ELIXER",
}

var locations = map[uint8]string{
	0x00: "Pallet Town",
	0x01: "Viridian City",
	0x02: "Pewter City",
	0x03: "Cerulean City",
	0x04: "Lavender Town",
	0x05: "Vermilion City",
	0x06: "Celadon City",
	0x07: "Fuchsia City",
	0x08: "Cinnabar Island",
	0x09: "Indigo Plateau",
	0x0A: "Saffron City",
	0x0C: "Route 1",
	0x0D: "Route 2",
	0x0E: "Route 3",
	0x0F: "Route 4",
	0x10: "Route 5",
	0x11: "Route 6",
	0x12: "Route 7",
	0x13: "Route 8",
	0x14: "Route 9",
	0x15: "Route 10",
	0x16: "Route 11",
	0x17: "Route 12",
	0x18: "Route 13",
	0x19: "Route 14",
	0x1A: "Route 15",
	0x1B: "Route 16",
	0x1C: "Route 17",
	0x1D: "Route 18",
	0x1E: "Sea Route 19",
	0x1F: "Sea Route 20",
	0x20: "Sea Route 21",
	0x21: "Route 22",
	0x22: "Route 23",
	0x23: "Route 24",
	0x24: "Route 25",
	0x25: "Pallet Town - Red's House 1F",
	0x26: "Pallet Town - Red's House 2F",
	0x27: "Pallet Town - Blue's House",
	0x28: "Pallet Town - Oak's Lab",
	0x33: "Viridian Forest",
	0x3B: "Mt. Moon",
}
