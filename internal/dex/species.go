package dex

// DefaultSpecies seeds the known-species bloom filter. The list covers the
// species the bundled curriculum exercises used; WithKnownSpecies swaps in a
// larger dex when needed.
var DefaultSpecies = []string{
	"bulbasaur", "ivysaur", "venusaur",
	"charmander", "charmeleon", "charizard",
	"squirtle", "wartortle", "blastoise",
	"caterpie", "metapod", "butterfree",
	"weedle", "kakuna", "beedrill",
	"pidgey", "pidgeotto", "pidgeot",
	"rattata", "raticate",
	"pikachu", "raichu",
	"sandshrew", "sandslash",
	"jigglypuff", "wigglytuff",
	"zubat", "golbat",
	"oddish", "gloom", "vileplume",
	"diglett", "dugtrio",
	"meowth", "persian",
	"psyduck", "golduck",
	"mankey", "primeape",
	"growlithe", "arcanine",
	"abra", "kadabra", "alakazam",
	"machop", "machoke", "machamp",
	"geodude", "graveler", "golem",
	"ponyta", "rapidash",
	"slowpoke", "slowbro",
	"magnemite", "magneton",
	"gastly", "haunter", "gengar",
	"onix",
	"krabby", "kingler",
	"voltorb", "electrode",
	"exeggcute", "exeggutor",
	"cubone", "marowak",
	"hitmonlee", "hitmonchan",
	"koffing", "weezing",
	"rhyhorn", "rhydon",
	"chansey",
	"staryu", "starmie",
	"scyther",
	"magmar", "pinsir", "tauros",
	"magikarp", "gyarados",
	"lapras", "ditto",
	"eevee", "vaporeon", "jolteon", "flareon",
	"snorlax",
	"articuno", "zapdos", "moltres",
	"dratini", "dragonair", "dragonite",
	"mewtwo", "mew",
}
