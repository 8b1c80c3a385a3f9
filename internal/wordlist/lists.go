package wordlist

// Two deny-list regimes ship with the engine. SevereList is the narrow
// curated set restricted to slurs, hate speech, scams and severe profanity;
// it deliberately excludes mild profanity and dating-context vocabulary.
// BroadList is the general-purpose set and is meant to be paired with
// ReclaimedTerms as its allow-list. Switching between them is a
// configuration choice, not a code change.

// SevereList returns the curated severe-only deny-list.
func SevereList() []Entry {
	return []Entry{
		{Term: "nigger", Category: CategorySlur},
		{Term: "nigga", Category: CategorySlur},
		{Term: "faggot", Category: CategorySlur},
		{Term: "fag", Category: CategorySlur},
		{Term: "kike", Category: CategorySlur},
		{Term: "spic", Category: CategorySlur},
		{Term: "chink", Category: CategorySlur},
		{Term: "wetback", Category: CategorySlur},
		{Term: "tranny", Category: CategorySlur},
		{Term: "retard", Category: CategorySlur},
		{Term: "gook", Category: CategorySlur},
		{Term: "raghead", Category: CategorySlur},

		{Term: "heil hitler", Category: CategoryHateSpeech},
		{Term: "white power", Category: CategoryHateSpeech},
		{Term: "gas the jews", Category: CategoryHateSpeech},
		{Term: "kill all", Category: CategoryHateSpeech},
		{Term: "ethnic cleansing", Category: CategoryHateSpeech},

		{Term: "fuck", Category: CategoryProfanity},
		{Term: "fucking", Category: CategoryProfanity},
		{Term: "motherfucker", Category: CategoryProfanity},
		{Term: "cunt", Category: CategoryProfanity},

		{Term: "free bitcoin", Category: CategoryScam},
		{Term: "cash app", Category: CategoryScam},
		{Term: "cashapp", Category: CategoryScam},
		{Term: "venmo me", Category: CategoryScam},
		{Term: "sugar daddy", Category: CategoryScam},
		{Term: "sugar baby", Category: CategoryScam},
		{Term: "onlyfans", Category: CategoryScam},
		{Term: "send money", Category: CategoryScam},
	}
}

// BroadList returns the general-purpose deny-list: everything in SevereList
// plus common profanity. It intentionally contains reclaimed in-group terms
// that a general profanity source would also flag; pair it with
// ReclaimedTerms so those are carved out before compilation.
func BroadList() []Entry {
	broad := []Entry{
		{Term: "shit", Category: CategoryProfanity},
		{Term: "bullshit", Category: CategoryProfanity},
		{Term: "bitch", Category: CategoryProfanity},
		{Term: "asshole", Category: CategoryProfanity},
		{Term: "dick", Category: CategoryProfanity},
		{Term: "dickhead", Category: CategoryProfanity},
		{Term: "pussy", Category: CategoryProfanity},
		{Term: "cock", Category: CategoryProfanity},
		{Term: "slut", Category: CategoryProfanity},
		{Term: "whore", Category: CategoryProfanity},
		{Term: "bastard", Category: CategoryProfanity},
		{Term: "wanker", Category: CategoryProfanity},
		{Term: "twat", Category: CategoryProfanity},
		{Term: "prick", Category: CategoryProfanity},
		{Term: "jackass", Category: CategoryProfanity},
		{Term: "douchebag", Category: CategoryProfanity},

		// Flagged by general-purpose profanity sources; removed by the
		// ReclaimedTerms allow-list in the strict preset.
		{Term: "queer", Category: CategoryProfanity},
		{Term: "homo", Category: CategorySlur},
		{Term: "dyke", Category: CategorySlur},
	}
	return append(broad, SevereList()...)
}

// ReclaimedTerms returns in-group identity terms that must never be flagged,
// regardless of what the active deny-list contains. The allow-list always
// wins over the deny-list for an identical term.
func ReclaimedTerms() []string {
	return []string{
		"queer",
		"gay",
		"lesbian",
		"trans",
		"nonbinary",
		"bisexual",
		"asexual",
		"intersex",
	}
}
