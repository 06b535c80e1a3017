package services

import (
	"fmt"
	"strings"

	"github.com/imanelbaz22-debug/serene-app/internal/analytics"
	"github.com/imanelbaz22-debug/serene-app/internal/model"
)

var greetings = map[string]string{
	"hi":        "Hey bestie! My name is Serene and I'll be your bestie for today, tell me how are you feeling or what's on your mind? I gotchu! ✨",
	"hello":     "Hi there, bestie! So glad to see you. How's your day going? I'm here to listen! 💖",
	"hey":       "Hey hey! What's up? I'm all ears! ✨",
	"thanks":    "Anytime, bestie! That's what I'm here for. You're doing great! ✨",
	"thank you": "You are so welcome! I've always got your back. 💖",
}

// localGreeting answers bare greetings without calling the model.
func localGreeting(message string) (string, bool) {
	key := strings.Trim(strings.ToLower(strings.TrimSpace(message)), "!?. ")
	reply, ok := greetings[key]
	return reply, ok
}

const (
	liteModeIntro = "I'm so sorry, bestie! My AI brain is taking a quick 60-second beauty nap (I've hit my free-tier limit). "
	snagReply     = "Oouf, I hit a little snag! Can you say that again, bestie? ✨"
)

type liteTopic struct {
	words  []string
	advice string
}

var liteTopics = []liteTopic{
	{[]string{"fight", "partner", "breakup", "relationship"},
		"I hear you on that relationship stress. 💖 Try taking a 20-minute breather before talking again, it really helps the heart reset!"},
	{[]string{"work", "job", "boss", "deadline"},
		"Ugh, work pressure is the worst! 💼 Try the Pomodoro technique for just 25 mins to get one small win."},
	{[]string{"sleep", "tired", "awake"},
		"Sending you sleepy vibes! 🌙 Try the 4-7-8 breathing technique: inhale for 4, hold for 7, exhale for 8."},
}

// liteReply is the keyword answer served while the model is unavailable.
func liteReply(message string) string {
	text := strings.ToLower(message)
	advice := ""
	for _, t := range liteTopics {
		if containsAny(text, t.words) {
			advice = t.advice
			break
		}
	}
	if advice == "" {
		if analytics.Classify(text) == analytics.SentimentNegative {
			advice = "I can feel you're having a rough time. 💖 Even if my brain is on a break, I'm here. Drink a glass of water and take one deep breath for me?"
		} else {
			advice = "I'm still here for you! I might be in 'Lite Mode' ✨ right now, but tell me more, I'm listening."
		}
	}
	return liteModeIntro + "\n\n" + advice
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

var (
	journalQuotaFallback = model.JournalAnalysis{
		Summary: "I'm having a hard time summarizing this right now because I've hit my daily chat limit with Google! ☕",
		Advice:  "• Take a deep breath.\n• Come back in a little while and I'll have more advice for you.\n• Keep writing if it feels good!",
	}
	journalEmptyFallback = model.JournalAnalysis{
		Summary: "I heard you, bestie. Even if my brain hit a glitch, I'm here for you.",
		Advice:  "• Take a deep breath.\n• Remember that your feelings are valid.\n• Try writing more if it helps!",
	}
	journalInvalidFallback = model.JournalAnalysis{
		Summary: "I'm listening, bestie. I couldn't quite summarize that, but I've got your back.",
		Advice:  "• Let's keep talking.\n• Take one small step for yourself today.",
	}
)

var (
	reportNoData = model.WeeklyReport{
		Summary: "I don't have enough data yet to write your weekly report, bestie! Keep checking in.",
		Win:     "Starting your journey!",
		Focus:   "Consistent check-ins.",
	}
	reportQuota = model.WeeklyReport{
		Summary: "I'm having a little trouble gathering your report right now because I've hit my daily data limit with Google! 📊☕",
		Win:     "Showing up for yourself!",
		Focus:   "Take a rest and check back later.",
	}
)

func reportGeneric(avgMood float64) model.WeeklyReport {
	return model.WeeklyReport{
		Summary: fmt.Sprintf("Your week had an average mood of %.1f. You're doing your best!", avgMood),
		Win:     "You showed up for yourself.",
		Focus:   "Keep tracking your stats!",
	}
}
