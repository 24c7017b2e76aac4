package seed

import (
	"fmt"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
)

var commonPlans = map[models.CEFRLevel][]string{
	models.LevelA1: {
		"Unit 1: Alphabet & Pronunciation",
		"Unit 2: Greetings & Introductions",
		"Unit 3: Numbers, Time & Dates",
		"Unit 4: Family & People",
		"Unit 5: Food & Drinks",
		"Unit 6: Around Town (Directions)",
		"Unit 7: Everyday Verbs (Present Tense)",
		"Unit 8: Shopping & Prices",
		"Unit 9: Weather & Seasons",
		"Unit 10: Review & Mini Quiz",
	},
	models.LevelA2: {
		"Unit 1: Daily Routine & Habits",
		"Unit 2: Present Continuous / Ongoing Actions",
		"Unit 3: Past Tense (Basics)",
		"Unit 4: Travel: Hotel, Airport, Tickets",
		"Unit 5: Health: Pharmacy & Doctor",
		"Unit 6: At Work: Emails & Meetings",
		"Unit 7: Opinions & Preferences",
		"Unit 8: Future Plans (Going to / Will)",
		"Unit 9: Stories: Short Dialogues",
		"Unit 10: Review & Speaking Practice",
	},
	models.LevelB1: {
		"Unit 1: Past Tense (Storytelling)",
		"Unit 2: Describing People & Experiences",
		"Unit 3: Work & Career (Interviews)",
		"Unit 4: Travel Problems & Solutions",
		"Unit 5: Media & Technology",
		"Unit 6: Culture & Traditions",
		"Unit 7: Expressing Agreement/Disagreement",
		"Unit 8: Conditional (If… then…) Basics",
		"Unit 9: Formal vs Informal Communication",
		"Unit 10: Final Review & Assessment",
	},
}

// languageUnits are two grammar units per language and level. They are
// slotted into the common plan at positions 4 and 7.
var languageUnits = map[string]map[models.CEFRLevel][2]string{
	"German": {
		models.LevelA1: {"Unit X: Articles (der/die/das)", "Unit Y: Separable Verbs (Basics)"},
		models.LevelA2: {"Unit X: Akkusativ & Dativ (Basics)", "Unit Y: Modal Verbs in Practice"},
		models.LevelB1: {"Unit X: Nebensätze (weil, dass) – Intro", "Unit Y: Passive Voice (Basics)"},
	},
	"French": {
		models.LevelA1: {"Unit X: Gender (le/la) & Basic Articles", "Unit Y: Être vs Avoir"},
		models.LevelA2: {"Unit X: Passé Composé (Basics)", "Unit Y: Pronouns (y, en) – Intro"},
		models.LevelB1: {"Unit X: Imparfait vs Passé Composé", "Unit Y: Subjunctive (Intro)"},
	},
	"Spanish": {
		models.LevelA1: {"Unit X: Ser vs Estar (Basics)", "Unit Y: Gender & Articles (el/la)"},
		models.LevelA2: {"Unit X: Preterite (Basics)", "Unit Y: Direct/Indirect Object Pronouns"},
		models.LevelB1: {"Unit X: Imperfect vs Preterite", "Unit Y: Subjuntivo (Intro)"},
	},
	"Italian": {
		models.LevelA1: {"Unit X: Articles (il/lo/la) – Basics", "Unit Y: Essere vs Avere"},
		models.LevelA2: {"Unit X: Passato Prossimo (Basics)", "Unit Y: Pronomi (lo/la/li/le) – Intro"},
		models.LevelB1: {"Unit X: Imperfetto vs Passato Prossimo", "Unit Y: Congiuntivo (Intro)"},
	},
}

// LessonPlan returns the lesson titles of a course, prefixed with its
// language and level. Levels above B1 have no plan.
func LessonPlan(language string, level models.CEFRLevel) []string {
	common := commonPlans[level]
	if len(common) == 0 {
		return nil
	}

	plan := make([]string, 0, len(common)+2)
	plan = append(plan, common...)
	if extras, ok := languageUnits[language][level]; ok {
		plan = insertAt(plan, 4, extras[0])
		plan = insertAt(plan, 7, extras[1])
	}

	titles := make([]string, len(plan))
	for i, unit := range plan {
		titles[i] = fmt.Sprintf("%s %s: %s", language, level, unit)
	}
	return titles
}

func insertAt(items []string, index int, item string) []string {
	items = append(items, "")
	copy(items[index+1:], items[index:])
	items[index] = item
	return items
}
