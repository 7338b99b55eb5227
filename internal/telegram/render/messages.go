package render

import (
	"fmt"
	"strings"

	"github.com/dermocheck/backend/internal/entity"
	appr "github.com/dermocheck/backend/internal/render"
)

const (
	MsgWelcome = `👋 Bienvenue sur DermoCheck.

Je vous guide pas à pas pour décrire un problème de peau et je prépare une synthèse à montrer à un professionnel de santé.

⚠️ DermoCheck ne fournit pas de diagnostic médical.`

	MsgProfileQuestion = `Avant de commencer, une question : avez-vous 18 ans ou plus ?`

	MsgMinorRestricted = `⚠️ Cette application n’est pas destinée aux mineurs non accompagnés.

Parlez-en à un parent ou à un adulte de confiance, qui pourra utiliser l'application avec vous.`

	MsgNoSession = `Aucune consultation en cours. Utilisez /start pour commencer.`

	MsgProcessing = `⏳ Un instant, je prépare la question suivante...`

	MsgReportReady = `✅ Votre synthèse est prête. Choisissez un format pour la télécharger.`

	MsgSessionFinished = `La consultation est terminée. Utilisez /start pour en démarrer une nouvelle.`

	MsgHelp = `🤖 Commandes disponibles :

/start - Démarrer ou reprendre une consultation
/help - Afficher cette aide
/cancel - Abandonner la consultation en cours
/dermatologues <pays> [ville] - Trouver un dermatologue

Répondez aux questions avec les boutons ou en tapant votre réponse. Vous pouvez envoyer des photos de la lésion quand je vous le demande.`

	MsgCancelConfirm = `⚠️ Êtes-vous sûr ? La consultation en cours sera perdue.`

	ErrGeneric  = `❌ Une erreur est survenue. Réessayez ou utilisez /start.`
	ErrBusy     = `⏳ Je traite déjà votre réponse précédente, un instant...`
	ErrFinished = `Cette consultation est terminée. Utilisez les boutons du rapport ou /start.`
)

// FormatView renders the view prompt plus a typed-input hint where the
// affordance expects free text rather than a button press.
func FormatView(view appr.View) string {
	var b strings.Builder
	b.WriteString(view.Prompt)

	switch view.Kind {
	case appr.AffordanceTextField:
		if view.Placeholder != "" {
			fmt.Fprintf(&b, "\n\n✍️ %s", view.Placeholder)
		}
	case appr.AffordanceNumberField:
		if view.PendingChoice != "" {
			fmt.Fprintf(&b, "\n\n🔢 Envoyez un nombre pour préciser « %s ».", view.PendingChoice)
		} else {
			b.WriteString("\n\n🔢 Envoyez un nombre.")
		}
	case appr.AffordanceAgeDropdown:
		fmt.Fprintf(&b, "\n\n🔢 Indiquez l'âge (nombre entier entre %d et %d).", view.MinAge, view.MaxAge)
	case appr.AffordanceAgeCombo:
		b.WriteString("\n\n✍️ Indiquez l'âge en années et/ou en mois, par exemple « 2 ans » ou « 18 mois ».")
	case appr.AffordanceCountry:
		b.WriteString("\n\n🌍 Choisissez un pays ci-dessous ou tapez son nom.")
	case appr.AffordancePhoto:
		b.WriteString("\n\n📷 Envoyez une ou plusieurs photos de la lésion.")
	case appr.AffordanceMultiSelect:
		b.WriteString("\n\n☑️ Plusieurs réponses possibles, validez quand vous avez fini.")
	}

	return b.String()
}

// FormatPlaces renders the dermatologist search result as one message.
func FormatPlaces(places []entity.Place) string {
	if len(places) == 0 {
		return "Aucun dermatologue trouvé pour cette recherche."
	}

	var b strings.Builder
	b.WriteString("🩺 Dermatologues trouvés :\n")
	for _, p := range places {
		fmt.Fprintf(&b, "\n• %s", p.Name)
		if p.Address != "" {
			fmt.Fprintf(&b, "\n  %s", p.Address)
		}
		if p.Phone != "" {
			fmt.Fprintf(&b, "\n  📞 %s", p.Phone)
		}
		if p.MapsURL != "" {
			fmt.Fprintf(&b, "\n  🗺 %s", p.MapsURL)
		}
		b.WriteString("\n")
	}
	return b.String()
}
