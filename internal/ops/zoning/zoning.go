// Package zoning classifies free-text localities into the fixed set of
// delivery zones used by the zone-based service.
package zoning

import "regexp"

// UnassignedZone is returned when a locality matches no rule.
const UnassignedZone = "ZONA SIN ASIGNAR"

// Rule maps a locality pattern to a zone label.
type Rule struct {
	Pattern *regexp.Regexp
	Zone    string
}

// Rules is the ordered classification table. Order matters: patterns are not
// mutually exclusive and the first match wins. Accented variants are spelled
// out in each pattern instead of normalizing the input.
var Rules = []Rule{
	{regexp.MustCompile(`(?i)suba`), "ZONA 1 - SUBA"},
	{regexp.MustCompile(`(?i)usaqu[eé]n`), "ZONA 2 - USAQUÉN"},
	{regexp.MustCompile(`(?i)chapinero`), "ZONA 3 - CHAPINERO"},
	{regexp.MustCompile(`(?i)kennedy`), "ZONA 4 - KENNEDY"},
	{regexp.MustCompile(`(?i)bosa`), "ZONA 5 - BOSA"},
	{regexp.MustCompile(`(?i)engativ[aá]`), "ZONA 6 - ENGATIVÁ"},
	{regexp.MustCompile(`(?i)fontib[oó]n`), "ZONA 7 - FONTIBÓN"},
	{regexp.MustCompile(`(?i)teusaquillo`), "ZONA 8 - TEUSAQUILLO"},
	{regexp.MustCompile(`(?i)ciudad bol[ií]var`), "ZONA 9 - CIUDAD BOLÍVAR"},
	{regexp.MustCompile(`(?i)rafael uribe`), "ZONA 10 - RAFAEL URIBE"},
}

// Classify returns the zone label for a locality, or UnassignedZone when the
// locality is empty or matches no rule.
func Classify(locality string) string {
	if locality == "" {
		return UnassignedZone
	}
	for _, rule := range Rules {
		if rule.Pattern.MatchString(locality) {
			return rule.Zone
		}
	}
	return UnassignedZone
}

// ZoneLabels returns the known zone labels in rule order, without the
// unassigned sentinel.
func ZoneLabels() []string {
	labels := make([]string, 0, len(Rules))
	for _, rule := range Rules {
		labels = append(labels, rule.Zone)
	}
	return labels
}
