package gibberish

// commonWords is the multi-language dictionary behind the long-text rule:
// high-frequency English words plus small Spanish and French subsets, enough
// to recognize at least one word in any genuine sentence without shipping a
// full lexicon.
var commonWords = map[string]bool{
	// English
	"the": true, "and": true, "for": true, "you": true, "that": true,
	"with": true, "this": true, "have": true, "from": true, "not": true,
	"are": true, "was": true, "but": true, "all": true, "can": true,
	"her": true, "his": true, "one": true, "out": true, "about": true,
	"what": true, "when": true, "like": true, "love": true, "time": true,
	"just": true, "know": true, "people": true, "good": true, "some": true,
	"would": true, "there": true, "their": true, "make": true, "life": true,
	"really": true, "music": true, "food": true, "travel": true, "enjoy": true,
	"looking": true, "friends": true, "movies": true, "work": true, "fun": true,
	"new": true, "here": true, "who": true, "been": true, "more": true,
	"hiking": true, "cooking": true, "reading": true, "dog": true, "cat": true,
	"coffee": true, "beach": true, "family": true, "weekend": true, "night": true,

	// Spanish
	"que": true, "los": true, "las": true, "por": true, "con": true,
	"una": true, "del": true, "para": true, "esta": true, "como": true,
	"pero": true, "mas": true, "tiempo": true, "vida": true, "amor": true,
	"gusta": true, "musica": true, "viajar": true, "amigos": true, "hola": true,

	// French
	"les": true, "des": true, "est": true, "dans": true, "pour": true,
	"pas": true, "avec": true, "sur": true, "mais": true, "nous": true,
	"vous": true, "bien": true, "tout": true, "aime": true, "vie": true,
	"musique": true, "voyage": true, "amis": true, "bonjour": true, "temps": true,
}
