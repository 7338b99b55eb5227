package render

// countries is the list offered by the country picker, French names,
// most common destinations of the user base first, then alphabetical.
var countries = []string{
	"France",
	"Belgique",
	"Suisse",
	"Canada",
	"Maroc",
	"Algérie",
	"Tunisie",
	"Sénégal",
	"Côte d'Ivoire",
	"Cameroun",
	"Afrique du Sud",
	"Allemagne",
	"Argentine",
	"Australie",
	"Autriche",
	"Brésil",
	"Bénin",
	"Burkina Faso",
	"Chili",
	"Chine",
	"Colombie",
	"Congo",
	"Danemark",
	"Espagne",
	"États-Unis",
	"Finlande",
	"Gabon",
	"Grèce",
	"Guinée",
	"Haïti",
	"Inde",
	"Irlande",
	"Italie",
	"Japon",
	"Liban",
	"Luxembourg",
	"Madagascar",
	"Mali",
	"Mauritanie",
	"Mexique",
	"Monaco",
	"Niger",
	"Norvège",
	"Pays-Bas",
	"Pologne",
	"Portugal",
	"République démocratique du Congo",
	"Roumanie",
	"Royaume-Uni",
	"Russie",
	"Suède",
	"Togo",
	"Turquie",
	"Viêt Nam",
	"Autre",
}

// Countries returns the country picker entries.
func Countries() []string {
	out := make([]string, len(countries))
	copy(out, countries)
	return out
}
