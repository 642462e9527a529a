package i18n

import "golang.org/x/text/language"

const (
	KeyFirstNameRequired = "errors.firstNameRequired"
	KeyFirstNameTooShort = "errors.firstNameTooShort"
	KeyEmailRequired     = "errors.emailRequired"
	KeyEmailInvalid      = "errors.emailInvalid"
	KeyConsentRequired   = "errors.consentRequired"
	KeyAlreadyReceived   = "errors.alreadyReceived"
	KeyGeneric           = "errors.generic"
	KeySuccess           = "success.message"
)

// Default returns the catalog shipped with the widget: English, Portuguese and Spanish.
func Default() *Catalog {
	return NewCatalog(map[language.Tag]map[string]string{
		language.English: {
			Namespace + "." + KeyFirstNameRequired: "Please enter your first name.",
			Namespace + "." + KeyFirstNameTooShort: "Your first name must have at least 2 characters.",
			Namespace + "." + KeyEmailRequired:     "Please enter your email address.",
			Namespace + "." + KeyEmailInvalid:      "Please enter a valid email address.",
			Namespace + "." + KeyConsentRequired:   "Please agree to receive the guide by email.",
			Namespace + "." + KeyAlreadyReceived:   "We have already received your request with this email.",
			Namespace + "." + KeyGeneric:           "Something went wrong. Please try again later.",
			Namespace + "." + KeySuccess:           "Check your inbox, your guide is on its way!",
		},
		language.Portuguese: {
			Namespace + "." + KeyFirstNameRequired: "Por favor, informe seu nome.",
			Namespace + "." + KeyFirstNameTooShort: "Seu nome deve ter pelo menos 2 caracteres.",
			Namespace + "." + KeyEmailRequired:     "Por favor, informe seu email.",
			Namespace + "." + KeyEmailInvalid:      "Por favor, informe um email válido.",
			Namespace + "." + KeyConsentRequired:   "Por favor, aceite receber o guia por email.",
			Namespace + "." + KeyAlreadyReceived:   "Já recebemos sua solicitação com este email.",
			Namespace + "." + KeyGeneric:           "Algo deu errado. Tente novamente mais tarde.",
			Namespace + "." + KeySuccess:           "Confira sua caixa de entrada, seu guia está a caminho!",
		},
		language.Spanish: {
			Namespace + "." + KeyFirstNameRequired: "Por favor, introduce tu nombre.",
			Namespace + "." + KeyFirstNameTooShort: "Tu nombre debe tener al menos 2 caracteres.",
			Namespace + "." + KeyEmailRequired:     "Por favor, introduce tu correo electrónico.",
			Namespace + "." + KeyEmailInvalid:      "Por favor, introduce un correo electrónico válido.",
			Namespace + "." + KeyConsentRequired:   "Por favor, acepta recibir la guía por correo.",
			Namespace + "." + KeyAlreadyReceived:   "Ya hemos recibido tu solicitud con este correo.",
			Namespace + "." + KeyGeneric:           "Algo salió mal. Inténtalo de nuevo más tarde.",
			Namespace + "." + KeySuccess:           "¡Revisa tu bandeja de entrada, tu guía está en camino!",
		},
	}, language.English)
}
