package gemini

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/dermocheck/backend/internal/consult"
	"github.com/dermocheck/backend/internal/entity"
)

// MockConnector replays a short scripted consultation so the service
// can run without an API key.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) Generate(ctx context.Context, hist []entity.Turn, newText string, images []entity.InlineImage) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating model response", zap.Int("history_len", len(hist)))

	switch {
	case len(hist) == 0:
		return "[STAGE:subject]Bienvenue sur DERMO-CHECK, votre dermatologue virtuel.\n\nCette auto-analyse concerne :[CHOIX]Moi-même[CHOIX]Une autre personne", nil
	case newText == consult.SubjectSelfAnswer:
		return "[STAGE:age_adult]Veuillez indiquer votre âge. [AGE_DROPDOWN:18:120]", nil
	case newText == consult.SubjectOtherAnswer:
		return "[STAGE:age_child]Quel est son âge ? [COMBO_INPUT:Âge en années et mois]", nil
	case strings.Contains(newText, "ans") || strings.Contains(newText, "mois") || isNumeric(newText):
		return "[STAGE:country]Dans quel pays résidez-vous ? [TEXT_INPUT:Indiquez votre pays de résidence]", nil
	case newText == consult.PhotoSubmitText || newText == consult.PhotoSkipText:
		return "[FINAL_REPORT] **Synthèse clinique**\n\nVoici le rapport de démonstration généré à partir de vos réponses.", nil
	case len(hist) >= 8:
		return "Ajoutez une photo nette de la lésion (bonne lumière, de près). [PHOTO_REQUEST]", nil
	case len(hist) >= 6:
		return "[STAGE:duration]Depuis combien de temps la lésion est apparue ?[CHOIX]Moins de deux jours[CHOIX]Quelques jours[CHOIX]Quelques semaines[CHOIX]Quelques mois[CHOIX]Plus d'un an", nil
	default:
		return "Quels symptômes ressentez-vous ? (plusieurs réponses possibles) [MULTI_CHOIX]Démangeaisons[MULTI_CHOIX]Brûlure[MULTI_CHOIX]Douleur[MULTI_CHOIX]Aucun symptôme notable", nil
	}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
