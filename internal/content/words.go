// Package content provides the static learning material: the word list,
// quiz generation and the daily podcast. The ledger treats all of it as
// opaque data.
package content

// Word is one vocabulary entry.
type Word struct {
	ID       string
	Word     string
	Meaning  string
	Synonyms []string
	Example  string
}

// DefaultWords is the built-in academic word list, used when no
// spreadsheet import is configured.
var DefaultWords = []Word{
	{
		ID:       "1",
		Word:     "proficient",
		Meaning:  "competent or skilled in doing or using something",
		Synonyms: []string{"skilled", "expert", "adept", "capable"},
		Example:  "She is proficient in three languages.",
	},
	{
		ID:       "2",
		Word:     "substantial",
		Meaning:  "of considerable importance, size, or worth",
		Synonyms: []string{"significant", "considerable", "large"},
		Example:  "The project requires a substantial amount of funding.",
	},
	{
		ID:       "3",
		Word:     "elaborate",
		Meaning:  "involving many carefully arranged parts; detailed",
		Synonyms: []string{"detailed", "complex", "intricate", "sophisticated"},
		Example:  "They made elaborate plans for the event.",
	},
	{
		ID:       "4",
		Word:     "controversial",
		Meaning:  "giving rise or likely to give rise to public disagreement",
		Synonyms: []string{"disputed", "debated", "contentious", "divisive"},
		Example:  "The new policy is highly controversial.",
	},
	{
		ID:       "5",
		Word:     "inevitable",
		Meaning:  "certain to happen; unavoidable",
		Synonyms: []string{"unavoidable", "inescapable", "certain", "destined"},
		Example:  "Change is inevitable in any organization.",
	},
	{
		ID:       "6",
		Word:     "comprehensive",
		Meaning:  "complete and including everything that is necessary",
		Synonyms: []string{"complete", "thorough", "full", "extensive"},
		Example:  "We need a comprehensive review of the system.",
	},
	{
		ID:       "7",
		Word:     "ambiguous",
		Meaning:  "open to more than one interpretation; unclear",
		Synonyms: []string{"unclear", "vague", "uncertain", "equivocal"},
		Example:  "His response was deliberately ambiguous.",
	},
	{
		ID:       "8",
		Word:     "persistent",
		Meaning:  "continuing firmly despite difficulty or opposition",
		Synonyms: []string{"determined", "tenacious", "resolute", "steadfast"},
		Example:  "She was persistent in her efforts to succeed.",
	},
	{
		ID:       "9",
		Word:     "prevalent",
		Meaning:  "widespread in a particular area or at a particular time",
		Synonyms: []string{"common", "widespread", "dominant", "pervasive"},
		Example:  "Obesity is prevalent in many developed countries.",
	},
	{
		ID:       "10",
		Word:     "reluctant",
		Meaning:  "unwilling and hesitant; disinclined",
		Synonyms: []string{"unwilling", "hesitant", "disinclined", "resistant"},
		Example:  "He was reluctant to share his personal details.",
	},
	{
		ID:       "11",
		Word:     "sophisticated",
		Meaning:  "developed to a high degree of complexity",
		Synonyms: []string{"refined", "advanced", "complex", "cultured"},
		Example:  "The software uses sophisticated algorithms.",
	},
	{
		ID:       "12",
		Word:     "versatile",
		Meaning:  "able to adapt or be adapted to many different functions",
		Synonyms: []string{"adaptable", "flexible", "multifunctional", "all-round"},
		Example:  "She is a versatile performer who can sing and act.",
	},
	{
		ID:       "13",
		Word:     "vulnerable",
		Meaning:  "susceptible to physical or emotional attack or harm",
		Synonyms: []string{"at risk", "exposed", "defenseless", "sensitive"},
		Example:  "Children are particularly vulnerable to this disease.",
	},
	{
		ID:       "14",
		Word:     "meticulous",
		Meaning:  "showing great attention to detail; very careful",
		Synonyms: []string{"careful", "thorough", "precise", "scrupulous"},
		Example:  "He is meticulous about his work.",
	},
	{
		ID:       "15",
		Word:     "pragmatic",
		Meaning:  "dealing with things sensibly and realistically",
		Synonyms: []string{"practical", "realistic", "sensible", "down-to-earth"},
		Example:  "We need a pragmatic approach to solve this problem.",
	},
	{
		ID:       "16",
		Word:     "resilient",
		Meaning:  "able to withstand or recover quickly from difficulties",
		Synonyms: []string{"tough", "flexible", "durable", "adaptable"},
		Example:  "The community proved to be resilient after the disaster.",
	},
	{
		ID:       "17",
		Word:     "scrutinize",
		Meaning:  "examine or inspect closely and thoroughly",
		Synonyms: []string{"examine", "inspect", "analyze", "study"},
		Example:  "The committee will scrutinize the proposal.",
	},
	{
		ID:       "18",
		Word:     "tentative",
		Meaning:  "not certain or fixed; provisional",
		Synonyms: []string{"provisional", "uncertain", "hesitant", "cautious"},
		Example:  "We have made tentative plans for the trip.",
	},
	{
		ID:       "19",
		Word:     "ubiquitous",
		Meaning:  "present, appearing, or found everywhere",
		Synonyms: []string{"everywhere", "omnipresent", "pervasive", "universal"},
		Example:  "Smartphones have become ubiquitous in modern society.",
	},
	{
		ID:       "20",
		Word:     "undermine",
		Meaning:  "erode the base or foundation of; weaken",
		Synonyms: []string{"weaken", "sabotage", "subvert", "compromise"},
		Example:  "The scandal could undermine public trust.",
	},
}

// Library is the loaded word list handed to the UI surfaces.
type Library struct {
	words []Word
}

// NewLibrary wraps a word list; an empty list falls back to the defaults.
func NewLibrary(words []Word) *Library {
	if len(words) == 0 {
		words = DefaultWords
	}
	return &Library{words: words}
}

// Words returns the full list.
func (l *Library) Words() []Word {
	return l.words
}

// ByID looks a word up, nil when unknown.
func (l *Library) ByID(id string) *Word {
	for i := range l.words {
		if l.words[i].ID == id {
			return &l.words[i]
		}
	}
	return nil
}
