package naming

import (
	"strings"

	"github.com/jmittelstaedt/faxsort/internal/core/domain"
)

// TimestampLayout is the timestamp embedded in generated filenames and
// archive/error prefixes.
const TimestampLayout = "20060102_150405"

// BuildFilename maps a classification onto the category-specific naming
// scheme:
//
//	Werbung:   Werbung_<timestamp>.pdf
//	Arztbrief: Arztbrief_<Fachrichtung>_<Name>_<Patient>_<timestamp>.pdf
//	sonstige:  <Kategorie>_<Absender>_<Patient>_<timestamp>.pdf
//
// Unknown senders and empty patients are omitted. The result is sanitized.
func BuildFilename(cls domain.Classification, timestamp string) string {
	var components []string

	switch {
	case strings.EqualFold(cls.Category, domain.CategoryAdvertisement):
		// Advertising senders are not worth tracking.
		components = []string{domain.CategoryAdvertisement, timestamp}

	case strings.EqualFold(cls.Category, domain.CategoryDoctorLetter):
		// The first sender token is read as the medical specialty
		// ("Kardiologe Mueller"), the rest as the doctor's name.
		specialty := "Arzt"
		name := ""
		parts := strings.Fields(cls.Sender)
		if len(parts) >= 2 {
			specialty = parts[0]
			name = strings.Join(parts[1:], "_")
		} else if cls.Sender != domain.UnknownSender {
			name = cls.Sender
		}
		components = []string{domain.CategoryDoctorLetter, specialty}
		if name != "" {
			components = append(components, name)
		}
		if cls.Patient != "" {
			components = append(components, cls.Patient)
		}
		components = append(components, timestamp)

	default:
		components = []string{cls.Category}
		if cls.Sender != "" && cls.Sender != domain.UnknownSender {
			components = append(components, cls.Sender)
		}
		if cls.Patient != "" {
			components = append(components, cls.Patient)
		}
		components = append(components, timestamp)
	}

	return Sanitize(strings.Join(components, "_") + ".pdf")
}
