package analytics

import (
	"regexp"
	"strings"

	"github.com/imanelbaz22-debug/serene-app/internal/model"
)

// InsightResult holds the reasons detected for a check-in and the matching
// tips, in evaluation order. Every reason has a tip at the same index, but
// Tips may be longer than Reasons: a middling energy level (4 or 5) adds a
// tip without naming a reason.
type InsightResult struct {
	Reasons []string `json:"reasons"`
	Tips    []string `json:"tips"`
}

// ruleInput is what a rule predicate sees.
type ruleInput struct {
	checkIn model.CheckIn
	text    string // lower-cased check-in text, "" when absent
	fired   int    // reasons emitted so far
}

// rule emits its tip, and its reason when non-empty, if match returns true.
type rule struct {
	match  func(in ruleInput) bool
	reason string
	tip    string
}

// stage is a group of rules. Stages are evaluated in order and are cumulative;
// within a stage only the first matching rule fires.
type stage struct {
	rules []rule
}

var insightStages = []stage{
	// sleep
	{rules: []rule{
		{
			match:  sleepBelow(5.0),
			reason: "Severe sleep deprivation",
			tip:    "Your brain needs recovery. Avoid caffeine after 2 PM. Tonight, try a 'digital sunset' (no screens 1 hour before bed) and keep your room cool (65°F/18°C) to maximize deep sleep.",
		},
		{
			match:  sleepBelow(7.0),
			reason: "Mild sleep debt",
			tip:    "You might feel irritable or groggy. Try the 4-7-8 breathing technique to fall asleep faster tonight: Inhale for 4s, hold for 7s, exhale for 8s.",
		},
	}},
	// energy
	{rules: []rule{
		{
			match:  energyAtMost(3),
			reason: "Low physical energy",
			tip:    "Fatigue can trick you into low mood. Drink a large glass of water immediately (dehydration causes fatigue). A 10-minute walk outside will boost norepinephrine more effectively than sugar.",
		},
		{
			match: energyAtMost(5),
			tip:   "Your energy is middling. Change your environment: stand up, stretch, or move to a different room to reset your focus.",
		},
	}},
	// topics, most specific first
	{rules: []rule{
		{
			match:  relationshipStress,
			reason: "Relationship conflict or strain",
			tip:    "RELATIONSHIP SOS: If emotions are high, take a strict 20-minute timeout to let stress hormones drop before talking again. When you resume, use 'I statements' ('I feel hurt when...') rather than accusations ('You always...'). This reduces defensiveness.",
		},
		{
			match:  textMentions(workTerms),
			reason: "Work-related pressure",
			tip:    "WORK FOCUS: Use the Eisenhower Matrix to sort tasks: do what is 'Urgent & Important' first. For everything else, schedule it or delegate it. Block time for 'deep work' (no notifications) to reduce the anxiety of multitasking.",
		},
		{
			match:  textMentions(academicTerms),
			reason: "Academic stress",
			tip:    "STUDY HACK: Passive re-reading is inefficient. Use 'Active Recall': test yourself on the material without looking. Combine this with the Pomodoro technique (25min work, 5min break) to maintain peak cognitive performance.",
		},
		{
			match:  textMentions(isolationTerms),
			reason: "Social isolation",
			tip:    "CONNECTION: Social pain lights up the same brain regions as physical pain. Call (don't text) a friend or family member for just 5 minutes. Hearing a voice releases oxytocin which lowers cortisol.",
		},
		{
			match:  textMentions(financialTerms),
			reason: "Financial anxiety",
			tip:    "FINANCE: Anxiety comes from uncertainty. Take 10 minutes today to just *list* your expenses. You don't need to solve it today, but accurately naming the problem reduces the brain's fear response.",
		},
		{
			match:  textMentions(physicalTerms),
			reason: "Physical discomfort",
			tip:    "Listen to your body. If you are in pain/sickness, your mood will naturally drop. Do not push through. Rest is productive when it heals you.",
		},
	}},
	// fallbacks only apply when nothing above named a reason
	{rules: []rule{
		{
			match:  func(in ruleInput) bool { return in.checkIn.Mood <= 4 && in.fired == 0 },
			reason: "General low mood",
			tip:    "Sometimes we feel down without a clear reason. That is valid. Try 'Behavioral Activation': do one small activity you usually enjoy, even if you don't feel like it. The action often creates the motivation, not the other way around.",
		},
	}},
	{rules: []rule{
		{
			match:  func(in ruleInput) bool { return in.checkIn.Mood >= 8 && in.fired == 0 },
			reason: "Positive State",
			tip:    "You are thriving! Take a moment to savor *exactly* why you feel good (write it down). Savoring positive experiences builds neural pathways that make resilience easier later.",
		},
	}},
}

// Keyword sets. Relationship keywords must match whole words so that "ex"
// never fires inside "next" or "exam"; topic keywords match at a word start
// so inflections ("exams", "working") still count.
var (
	relationshipCrisis   = wholeWords("breakup", "ex", "divorce", "separated", "broken up")
	relationshipEntities = wholeWords("partner", "wife", "husband", "boyfriend", "girlfriend", "spouse", "fiance")
	relationshipConflict = wholeWords("fight", "argument", "conflict", "clash", "disagreement", "mad", "angry", "annoyed")

	workTerms      = wordPrefixes("work", "job", "project", "boss", "deadline", "career")
	academicTerms  = wordPrefixes("exam", "study", "school", "grade", "test", "homework")
	isolationTerms = wordPrefixes("lonely", "alone", "isolated", "sad", "miss")
	financialTerms = wordPrefixes("money", "debt", "rent", "bill", "expensive", "cost")
	physicalTerms  = wordPrefixes("sick", "pain", "headache", "tired", "body")
)

// Analyze maps a single check-in to ordered reasons and tips.
func Analyze(c model.CheckIn) InsightResult {
	out := InsightResult{Reasons: []string{}, Tips: []string{}}
	in := ruleInput{checkIn: c}
	if c.Text != nil {
		in.text = strings.ToLower(*c.Text)
	}

	for _, st := range insightStages {
		for _, r := range st.rules {
			if !r.match(in) {
				continue
			}
			if r.reason != "" {
				out.Reasons = append(out.Reasons, r.reason)
				in.fired++
			}
			out.Tips = append(out.Tips, r.tip)
			break
		}
	}
	return out
}

func sleepBelow(hours float64) func(ruleInput) bool {
	return func(in ruleInput) bool {
		return in.checkIn.SleepHours != nil && *in.checkIn.SleepHours < hours
	}
}

func energyAtMost(level int) func(ruleInput) bool {
	return func(in ruleInput) bool {
		return in.checkIn.Energy != nil && *in.checkIn.Energy <= level
	}
}

func relationshipStress(in ruleInput) bool {
	if in.text == "" {
		return false
	}
	if relationshipCrisis.MatchString(in.text) {
		return true
	}
	if !relationshipEntities.MatchString(in.text) {
		return false
	}
	return relationshipConflict.MatchString(in.text) || in.checkIn.Mood <= 4
}

func textMentions(rx *regexp.Regexp) func(ruleInput) bool {
	return func(in ruleInput) bool {
		return in.text != "" && rx.MatchString(in.text)
	}
}

func wholeWords(words ...string) *regexp.Regexp {
	return regexp.MustCompile(`\b(?:` + alternation(words) + `)\b`)
}

func wordPrefixes(words ...string) *regexp.Regexp {
	return regexp.MustCompile(`\b(?:` + alternation(words) + `)`)
}

func alternation(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}
