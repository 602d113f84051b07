package language

import mapset "github.com/deckarep/golang-set/v2"

// Closed function-word sets used by the stopword-dominance fallback.
// German and English are the accept languages; the rest are the common
// confusables seen in European postings.
var stopwordSets = map[string]mapset.Set[string]{
	"de": newSet(
		"und", "der", "die", "das", "ein", "eine", "einen", "einem", "einer",
		"mit", "für", "fur", "von", "bei", "aus", "nach", "über", "uber",
		"wir", "sie", "du", "ihr", "uns", "unser", "unsere", "dein", "deine",
		"ist", "sind", "wird", "werden", "haben", "hast", "kannst", "können",
		"konnen", "auf", "als", "auch", "oder", "nicht", "zum", "zur", "im",
		"am", "um", "dass", "sowie", "bzw", "dich", "dir", "zu", "in", "an",
		"es", "er", "wie", "den", "dem", "des", "sich", "bis",
	),
	"en": newSet(
		"the", "and", "you", "your", "our", "with", "for", "from", "that",
		"this", "are", "will", "have", "has", "can", "what", "who", "where",
		"when", "how", "not", "but", "all", "their", "they", "them", "its",
		"was", "were", "been", "being", "about", "into", "through", "across",
		"within", "while", "should", "would", "could", "more", "than", "a",
		"i", "in", "of", "to", "on", "at", "we", "be", "or", "as", "an",
		"by", "is", "it", "if", "us",
	),
	"fr": newSet(
		"le", "la", "les", "un", "une", "des", "du", "de", "et", "ou",
		"nous", "vous", "ils", "elles", "est", "sont", "sera", "avec",
		"pour", "dans", "sur", "par", "pas", "plus", "que", "qui", "vos",
		"nos", "votre", "notre", "aux", "ce", "cette", "ces", "être", "avoir",
		"à",
	),
	"es": newSet(
		"el", "la", "los", "las", "un", "una", "unos", "unas", "y", "o",
		"de", "del", "en", "con", "por", "para", "que", "qué", "es", "son",
		"será", "nosotros", "usted", "su", "sus", "nuestro", "nuestra",
		"como", "más", "pero", "está", "están", "ser", "tener",
	),
	"it": newSet(
		"il", "lo", "la", "gli", "le", "un", "una", "uno", "di", "del",
		"della", "e", "o", "che", "chi", "con", "per", "tra", "fra", "su",
		"da", "nel", "nella", "siamo", "sono", "sarà", "nostro", "nostra",
		"più", "anche", "come", "essere", "avere", "questo", "questa",
	),
	"nl": newSet(
		"de", "het", "een", "en", "of", "van", "voor", "met", "bij", "naar",
		"wij", "jij", "je", "jouw", "ons", "onze", "is", "zijn", "wordt",
		"worden", "hebben", "heeft", "kun", "kunnen", "niet", "ook", "als",
		"dat", "dit", "aan", "op", "uit", "over",
	),
	"pt": newSet(
		"o", "a", "os", "as", "um", "uma", "uns", "umas", "e", "ou", "de",
		"do", "da", "dos", "das", "em", "no", "na", "nos", "nas", "com",
		"por", "para", "que", "é", "são", "será", "nós", "você", "seu",
		"sua", "nosso", "nossa", "mais", "como", "ser", "ter",
	),
}

func newSet(words ...string) mapset.Set[string] {
	return mapset.NewThreadUnsafeSet(words...)
}
