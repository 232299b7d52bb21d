package domain

const (
	// FallbackCategory is used whenever the model returns no usable category.
	FallbackCategory = "Befund"
	// UnknownSender marks a document whose sender could not be determined.
	UnknownSender = "Unbekannt"

	CategoryAdvertisement = "Werbung"
	CategoryDoctorLetter  = "Arztbrief"
)

// Categories is the fixed taxonomy offered to the vision model. The model is
// allowed to invent a short new category when none of these fits.
var Categories = []string{
	"Arztbrief",
	"Labor",
	"Medikationsplan",
	"Sturzprotokoll",
	"Rezeptanforderung",
	"Bestellung",
	"Werbung",
	"Kommunikation",
	"Überweisung",
	"Befund",
}

// Classification is the structured result of analyzing one fax document.
// Invariant: after normalization neither Sender nor Patient contains the
// configured own identity of the practice.
type Classification struct {
	Category string `json:"kategorie"`
	Sender   string `json:"absender"`
	Patient  string `json:"patient"`
}
