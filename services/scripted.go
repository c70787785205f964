package services

import "strings"

// Canned chatbot replies. Exact phrasings are checked first, then any
// table key appearing as a substring of the message, then the looser
// keyword groups. Only when nothing matches does the chatbot fall
// through to the generative backend.

var scriptedReplies = map[string]string{
	"where is haris":          "Haris is based in Medan, North Sumatra, and is currently busy with web development and machine learning projects.",
	"where does haris live":   "Haris lives in Medan, North Sumatra.",
	"what does haris do":      "Haris is a full-stack developer working across web and AI/ML projects, both freelance and in-house.",
	"how do i contact haris":  "The easiest way is the contact form on this site, or the email listed on the profile page.",
	"what are haris's skills": "Full-stack web development (PHP, JavaScript, Python, SQL) plus machine learning and deep learning with TensorFlow, PyTorch and scikit-learn.",
}

type keywordGroup struct {
	keywords []string
	reply    string
}

var keywordGroups = []keywordGroup{
	{
		keywords: []string{"where", "location", "live", "based", "address"},
		reply:    "Haris is based in Medan, North Sumatra, and works on web development and AI projects from there.",
	},
	{
		keywords: []string{"skill", "stack", "technology", "tech", "language"},
		reply:    "Haris works with PHP, JavaScript, Python and SQL on the web side, and TensorFlow, PyTorch and scikit-learn for machine learning.",
	},
	{
		keywords: []string{"contact", "email", "reach", "hire"},
		reply:    "You can reach Haris through the contact form on this site — messages land straight in his inbox.",
	},
	{
		keywords: []string{"project", "portfolio", "work", "built"},
		reply:    "Check out the projects page! It covers web apps, APIs and machine learning work, with links to demos and source code.",
	},
	{
		keywords: []string{"hobby", "hobbies", "free time", "fun"},
		reply:    "Outside of work Haris enjoys traveling, gaming, and tinkering with side projects.",
	},
	{
		keywords: []string{"hello", "hi ", "hey"},
		reply:    "Hey there! Ask me anything about Haris — his skills, projects, or how to get in touch.",
	},
}

// ScriptedReply returns the canned reply matching a user message, if
// any. Matching is case-insensitive; ok is false when the message
// should go to the generative backend instead.
func ScriptedReply(message string) (reply string, ok bool) {
	normalized := strings.ToLower(strings.TrimSpace(message))
	if normalized == "" {
		return "", false
	}

	if reply, ok := scriptedReplies[normalized]; ok {
		return reply, true
	}

	for keyword, reply := range scriptedReplies {
		if strings.Contains(normalized, keyword) {
			return reply, true
		}
	}

	for _, group := range keywordGroups {
		for _, keyword := range group.keywords {
			if strings.Contains(normalized, keyword) {
				return group.reply, true
			}
		}
	}

	return "", false
}
