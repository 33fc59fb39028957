package i18n

import "strings"

// Minimal fr/en catalog for user-facing labels. French is the reference
// language of the portal; unknown languages fall back to it.
var translations = map[string]map[string]string{
	"fr": {
		"required":            "Requis",
		"payment_not_found":   "Paiement introuvable ou erreur.",
		"payment_success":     "Paiement validé !",
		"payment_pending":     "Paiement en attente de validation.",
		"devis_updated":       "Statut du devis mis à jour avec succès.",
		"devis_update_failed": "Erreur lors de la mise à jour du statut du devis.",
		"project_not_found":   "Projet introuvable.",
		"bank_transfer_note":  "Une fois le virement reçu, votre paiement sera validé sous 1 à 2 jours ouvrés.",
		"logged_out":          "Vous êtes déconnecté.",
	},
	"en": {
		"required":            "Required",
		"payment_not_found":   "Payment not found or in error.",
		"payment_success":     "Payment confirmed!",
		"payment_pending":     "Payment awaiting validation.",
		"devis_updated":       "Quote status updated.",
		"devis_update_failed": "Could not update the quote status.",
		"project_not_found":   "Project not found.",
		"bank_transfer_note":  "Once the transfer is received, your payment will be confirmed within 1 to 2 business days.",
		"logged_out":          "You are signed out.",
	},
}

// T resolves code in lang, falling back to French, then to the code itself.
func T(lang, code string) string {
	if m, ok := translations[lang]; ok {
		if msg, ok := m[code]; ok {
			return msg
		}
	}
	if msg, ok := translations["fr"][code]; ok {
		return msg
	}
	return code
}

// DetectLanguage picks fr or en from an Accept-Language header value.
func DetectLanguage(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == "" {
		return "fr"
	}
	for _, part := range strings.Split(h, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "en" || strings.HasPrefix(tag, "en-") {
			return "en"
		}
		if tag == "fr" || strings.HasPrefix(tag, "fr-") {
			return "fr"
		}
	}
	return "fr"
}
