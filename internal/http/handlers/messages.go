package handlers

import (
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"nutritrack/internal/middleware"
)

// Message keys double as the English text.
const (
	msgInvalidInput       = "Invalid input: %s"
	msgUpstream           = "The product database is unreachable, try again later"
	msgUnavailable        = "Data is temporarily unavailable"
	msgInternal           = "Internal error"
	msgNotFound           = "Resource not found"
	msgProductNotFound    = "Product %s not found"
	msgEntryNotFound      = "Entry %d not found"
	msgMissingQuery       = "No search term provided"
	msgProductAdded       = "%s added (%v g)"
	msgEntryDeleted       = "Entry deleted"
	msgDayCleared         = "%d entries deleted"
	msgProfileSaved       = "Profile saved"
	msgJournalUnavailable = "Journal unavailable, totals shown as zero"
)

var french = map[string]string{
	msgInvalidInput:       "Données invalides : %s",
	msgUpstream:           "La base de produits est injoignable, réessayez plus tard",
	msgUnavailable:        "Données temporairement indisponibles",
	msgInternal:           "Erreur interne",
	msgNotFound:           "Ressource introuvable",
	msgProductNotFound:    "Produit %s non trouvé",
	msgEntryNotFound:      "Entrée %d introuvable",
	msgMissingQuery:       "Aucun terme de recherche fourni",
	msgProductAdded:       "%s ajouté (%v g)",
	msgEntryDeleted:       "Entrée supprimée",
	msgDayCleared:         "%d entrées supprimées",
	msgProfileSaved:       "Profil enregistré",
	msgJournalUnavailable: "Historique indisponible, totaux affichés à zéro",
}

func init() {
	for key, text := range french {
		_ = message.SetString(language.French, key, text)
		_ = message.SetString(language.English, key, key)
	}
}

// tr renders key in the locale negotiated by middleware.I18N.
func tr(r *http.Request, key string, args ...any) string {
	tag := language.Make(middleware.LocaleFromContext(r.Context()))
	return message.NewPrinter(tag).Sprintf(key, args...)
}
