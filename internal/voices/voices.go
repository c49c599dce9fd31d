// Package voices holds the static catalog of voices the gateway
// advertises through GET /voices. Exists reports catalog membership;
// the request path does not reject a TTSRequest.Voice outside the
// catalog. The catalog is a fixed table, not something loaded from the
// engine at runtime: the engine binary accepts any of these IDs on its
// command line, but does not itself expose a "list voices" operation.
package voices

// DefaultVoiceID is the voice used when a TTSRequest omits one.
const DefaultVoiceID = "bf_lily"

// Info is one catalog entry, matching the shape GET /voices returns.
type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	Language    string `json:"language"`
	Description string `json:"description"`
}

const (
	genderFemale = "female"
	genderMale   = "male"

	langAmericanEnglish = "american_english"
	langBritishEnglish  = "british_english"
	langEuropean        = "european"
	langFrench          = "french"
	langHindi           = "hindi"
	langItalian         = "italian"
	langJapanese        = "japanese"
	langPortuguese      = "portuguese"
	langChinese         = "chinese"
)

// catalog is the full set of voices, grounded on the Kokoro v1.0 voice
// table: one entry per id/name/gender/language/description tuple.
var catalog = []Info{
	{"af_alloy", "Alloy", genderFemale, langAmericanEnglish, "American female voice - Alloy"},
	{"af_aoede", "Aoede", genderFemale, langAmericanEnglish, "American female voice - Aoede"},
	{"af_bella", "Bella", genderFemale, langAmericanEnglish, "American female voice - Bella"},
	{"af_heart", "Heart", genderFemale, langAmericanEnglish, "American female voice - Heart"},
	{"af_jessica", "Jessica", genderFemale, langAmericanEnglish, "American female voice - Jessica"},
	{"af_kore", "Kore", genderFemale, langAmericanEnglish, "American female voice - Kore"},
	{"af_nicole", "Nicole", genderFemale, langAmericanEnglish, "American female voice - Nicole"},
	{"af_nova", "Nova", genderFemale, langAmericanEnglish, "American female voice - Nova"},
	{"af_river", "River", genderFemale, langAmericanEnglish, "American female voice - River"},
	{"af_sarah", "Sarah", genderFemale, langAmericanEnglish, "American female voice - Sarah"},
	{"af_sky", "Sky", genderFemale, langAmericanEnglish, "American female voice - Sky"},

	{"am_adam", "Adam", genderMale, langAmericanEnglish, "American male voice - Adam"},
	{"am_echo", "Echo", genderMale, langAmericanEnglish, "American male voice - Echo"},
	{"am_eric", "Eric", genderMale, langAmericanEnglish, "American male voice - Eric"},
	{"am_fenrir", "Fenrir", genderMale, langAmericanEnglish, "American male voice - Fenrir"},
	{"am_liam", "Liam", genderMale, langAmericanEnglish, "American male voice - Liam"},
	{"am_michael", "Michael", genderMale, langAmericanEnglish, "American male voice - Michael"},
	{"am_onyx", "Onyx", genderMale, langAmericanEnglish, "American male voice - Onyx"},
	{"am_puck", "Puck", genderMale, langAmericanEnglish, "American male voice - Puck"},
	{"am_santa", "Santa", genderMale, langAmericanEnglish, "American male voice - Santa"},

	{"bf_alice", "Alice", genderFemale, langBritishEnglish, "British female voice - Alice"},
	{"bf_emma", "Emma", genderFemale, langBritishEnglish, "British female voice - Emma"},
	{"bf_isabella", "Isabella", genderFemale, langBritishEnglish, "British female voice - Isabella"},
	{"bf_lily", "Lily", genderFemale, langBritishEnglish, "British female voice - Lily"},

	{"bm_daniel", "Daniel", genderMale, langBritishEnglish, "British male voice - Daniel"},
	{"bm_fable", "Fable", genderMale, langBritishEnglish, "British male voice - Fable"},
	{"bm_george", "George", genderMale, langBritishEnglish, "British male voice - George"},
	{"bm_lewis", "Lewis", genderMale, langBritishEnglish, "British male voice - Lewis"},

	{"ef_dora", "Dora", genderFemale, langEuropean, "European female voice - Dora"},
	{"em_alex", "Alex", genderMale, langEuropean, "European male voice - Alex"},
	{"em_santa", "Santa", genderMale, langEuropean, "European male voice - Santa"},

	{"ff_siwis", "Siwis", genderFemale, langFrench, "French female voice - Siwis"},

	{"hf_alpha", "Alpha", genderFemale, langHindi, "Hindi female voice - Alpha"},
	{"hf_beta", "Beta", genderFemale, langHindi, "Hindi female voice - Beta"},
	{"hm_omega", "Omega", genderMale, langHindi, "Hindi male voice - Omega"},
	{"hm_psi", "Psi", genderMale, langHindi, "Hindi male voice - Psi"},

	{"if_sara", "Sara", genderFemale, langItalian, "Italian female voice - Sara"},
	{"im_nicola", "Nicola", genderMale, langItalian, "Italian male voice - Nicola"},

	{"jf_alpha", "Alpha", genderFemale, langJapanese, "Japanese female voice - Alpha"},
	{"jf_gongitsune", "Gongitsune", genderFemale, langJapanese, "Japanese female voice - Gongitsune"},
	{"jf_nezumi", "Nezumi", genderFemale, langJapanese, "Japanese female voice - Nezumi"},
	{"jf_tebukuro", "Tebukuro", genderFemale, langJapanese, "Japanese female voice - Tebukuro"},
	{"jm_kumo", "Kumo", genderMale, langJapanese, "Japanese male voice - Kumo"},

	{"pf_dora", "Dora", genderFemale, langPortuguese, "Portuguese female voice - Dora"},
	{"pm_alex", "Alex", genderMale, langPortuguese, "Portuguese male voice - Alex"},
	{"pm_santa", "Santa", genderMale, langPortuguese, "Portuguese male voice - Santa"},

	{"zf_xiaobei", "Xiaobei", genderFemale, langChinese, "Chinese female voice - Xiaobei"},
	{"zf_xiaoni", "Xiaoni", genderFemale, langChinese, "Chinese female voice - Xiaoni"},
	{"zf_xiaoxiao", "Xiaoxiao", genderFemale, langChinese, "Chinese female voice - Xiaoxiao"},
	{"zf_xiaoyi", "Xiaoyi", genderFemale, langChinese, "Chinese female voice - Xiaoyi"},
	{"zm_yunjian", "Yunjian", genderMale, langChinese, "Chinese male voice - Yunjian"},
	{"zm_yunxi", "Yunxi", genderMale, langChinese, "Chinese male voice - Yunxi"},
	{"zm_yunxia", "Yunxia", genderMale, langChinese, "Chinese male voice - Yunxia"},
	{"zm_yunyang", "Yunyang", genderMale, langChinese, "Chinese male voice - Yunyang"},
}

var byID = func() map[string]struct{} {
	ids := make(map[string]struct{}, len(catalog))
	for _, v := range catalog {
		ids[v.ID] = struct{}{}
	}

	return ids
}()

// List returns the full voice catalog in a stable order.
func List() []Info {
	out := make([]Info, len(catalog))
	copy(out, catalog)

	return out
}

// Exists reports whether id names a known voice.
func Exists(id string) bool {
	_, ok := byID[id]

	return ok
}
