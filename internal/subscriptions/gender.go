package subscriptions

import "regexp"

// feminineNameRe recognizes Czech feminine surnames (-ová, -ská) and common
// feminine first names. It is a heuristic for aggregate statistics only.
var feminineNameRe = regexp.MustCompile(`(?i)` +
	`(\p{L}+\s\p{L}+ov[aá]$)|` +
	`(\p{L}+\s\p{L}+ská$)|` +
	`((^|[^\p{L}])(` +
	`Jana|Marie|Eva|Hana|Anna|Lenka|Kate[řr]ina|Lucie|V[eě]ra|Alena|Petra|Veronika|Jaroslava|` +
	`Tereza|Martina|Michaela|Jitka|Helena|Ludmila|Zde[ňn]ka|Ivana|Monika|Eli[šs]ka|Zuzana|` +
	`Mark[ée]ta|Jarmila|Barbora|Ji[řr]ina|Marcela|Krist[ýy]na|Alexandra|Daniela|Kayla|` +
	`Hann?ah?|Mia|Kl[áa]ra|Olga|Nath?[áa]lie|Adina|Karol[íi]na|Ane[žz]ka|Marij?[ea]|Alisa|` +
	`Hany|Dominika|Marta|Nikola` +
	`)([^\p{L}]|$))`)

// HasFeminineName guesses whether a full name is feminine, empty names are not.
func HasFeminineName(name string) bool {
	if name == "" {
		return false
	}
	return feminineNameRe.MatchString(name)
}

// Gender renders the guess the way the subscriptions sheet expects it.
func Gender(name string) string {
	if HasFeminineName(name) {
		return "F"
	}
	return "M"
}
