package ollama

import (
	"fmt"
	"strings"

	"github.com/jmittelstaedt/faxsort/internal/core/domain"
)

// buildSystemPrompt isolates this request from any previous conversation
// state: the correlation id plus the explicit "forget everything" instruction
// keeps sender names and categories from bleeding between documents.
func buildSystemPrompt(requestID, ownIdentity string) string {
	return fmt.Sprintf(
		"Du bist ein Fax-Analyse-Assistent für eine Arztpraxis. "+
			"Dies ist eine NEUE, UNABHÄNGIGE Analyse (ID: %s). "+
			"Vergiss alles aus vorherigen Analysen komplett. "+
			"Analysiere NUR das beigefügte Bild. "+
			"Der Empfänger ist '%s' — dieser Name darf NIEMALS "+
			"als Absender oder Patient in deiner Antwort erscheinen. "+
			"Antworte AUSSCHLIESSLICH im JSON-Format. "+
			"Verwende KEINE Beispielnamen — nur das, was du tatsächlich im Dokument liest.",
		requestID, ownIdentity)
}

func buildUserPrompt(requestID, ownIdentity string) string {
	return fmt.Sprintf(
		"Analysiere dieses Fax-Dokument (ID: %s).\n\n"+
			"Lies das Dokument aufmerksam und identifiziere:\n\n"+
			"1. KATEGORIE — wähle die passendste:\n"+
			"   %s\n"+
			"   Falls keine passt, erfinde eine kurze treffende Kategorie.\n\n"+
			"2. ABSENDER — wer hat das Fax gesendet?\n"+
			"   Lies den tatsächlichen Namen und ggf. Fachrichtung aus dem Dokument.\n"+
			"   Der Empfänger '%s' ist NICHT der Absender!\n\n"+
			"3. PATIENT — Nachname des Patienten, falls im Dokument erkennbar.\n\n"+
			"Antworte NUR mit diesem JSON, sonst nichts:\n"+
			`{"kategorie": "...", "absender": "...", "patient": "..."}`,
		requestID, strings.Join(domain.Categories, ", "), ownIdentity)
}
