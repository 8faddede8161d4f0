package glyph

// Rule is a row of the legend shown to users. The legend symbols are
// display-only and may differ from the parsing grammar.
type Rule struct {
	Symbol    string
	Meaning   string
	MeaningEn string
}

const CurrentRules = "current"

var rulesByVersion = map[string][]Rule{
	CurrentRules: {
		{Symbol: "・", Meaning: "任務 Tasks", MeaningEn: "Tasks"},
		{Symbol: "。", Meaning: "活動 Events", MeaningEn: "Events"},
		{Symbol: "－", Meaning: "筆記 Notes / 靈感／想法", MeaningEn: "Notes / Ideas"},
	},
}

// Rules returns the legend for version, falling back to the current set.
func Rules(version string) []Rule {
	rules, ok := rulesByVersion[version]
	if !ok {
		rules = rulesByVersion[CurrentRules]
	}
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
