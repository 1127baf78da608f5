// Package content holds the devotional texts and tally phrases shown by the
// dua and tasbih screens.
package content

import (
	"fmt"
	"strings"
)

// Dua is a supplication with its Arabic text, transliteration and meaning.
type Dua struct {
	Key             string `json:"key"`
	Title           string `json:"title"`
	Arabic          string `json:"arabic"`
	Transliteration string `json:"transliteration"`
	Translation     string `json:"translation"`
}

// SaharDua is recited at the pre-dawn meal.
var SaharDua = Dua{
	Key:             "sahar",
	Title:           "Saharlik duosi",
	Arabic:          "نَوَيْتُ أَنْ أَصُومَ صَوْمَ شَهْرِ رَمَضَانَ مِنَ الْفَجْرِ إِلَى الْمَغْرِبِ، خَالِصًا لِلَّهِ تَعَالَى. اَللهُ أَكْبَرُ",
	Transliteration: "Navaytu an asuma sovma shahri Ramazona minal fajri ilal mag'ribi, xolisan lillahi ta'aala. Allohu akbar.",
	Translation:     "Ramazon oyining ro'zasini subhdan to kun botguncha tutmoqni niyat qildim. Xolis Alloh uchun. Alloh buyukdir.",
}

// IftorDua is recited when breaking the fast.
var IftorDua = Dua{
	Key:             "iftor",
	Title:           "Iftorlik duosi",
	Arabic:          "اَللَّهُمَّ لَكَ صُمْتُ وَ بِكَ آمَنْتُ وَ عَلَيْكَ تَوَكَّلْتُ وَ عَلَى رِزْقِكَ أَفْطَرْتُ، فَاغْفِرْلِي يَا غَفَّارُ مَا قَدَّمْتُ وَ مَا أَخَّرْتُ",
	Transliteration: "Allohumma laka sumtu va bika aamantu va 'alayka tavakkaltu va 'alaa rizqika aftartu, fag'firliy yaa G'offaru maa qoddamtu va maa axxortu.",
	Translation:     "Ey Alloh, ushbu ro'zamni Sen uchun tutdim va Senga iymon keltirdim va Senga tavakkal qildim va bergan rizqing bilan iftor qildim. Ey mag'firat qiluvchi Zot, mening avvalgi va keyingi gunohlarimni mag'firat qilgil.",
}

// Duas lists the supplications in display order.
var Duas = []Dua{SaharDua, IftorDua}

// FindDua returns the dua with the given key, case-insensitively.
func FindDua(key string) (Dua, error) {
	for _, d := range Duas {
		if strings.EqualFold(d.Key, strings.TrimSpace(key)) {
			return d, nil
		}
	}
	keys := make([]string, len(Duas))
	for i, d := range Duas {
		keys[i] = d.Key
	}
	return Dua{}, fmt.Errorf("unknown dua %q; valid: %s", key, strings.Join(keys, ", "))
}

// TallyPhrases are the dhikr phrases offered by the tally counter.
var TallyPhrases = []string{
	"Subhanallah",
	"Alhamdulillah",
	"Allahu Akbar",
	"La ilaha illallah",
}

// DefaultTallyPhrase is selected on start.
const DefaultTallyPhrase = "Subhanallah"

// ValidTallyPhrase reports whether p is one of TallyPhrases.
func ValidTallyPhrase(p string) bool {
	for _, v := range TallyPhrases {
		if v == p {
			return true
		}
	}
	return false
}

// NextTallyPhrase cycles through TallyPhrases after p.
func NextTallyPhrase(p string) string {
	for i, v := range TallyPhrases {
		if v == p {
			return TallyPhrases[(i+1)%len(TallyPhrases)]
		}
	}
	return TallyPhrases[0]
}

// Texts shown above an empty conversation.
const (
	ChatTitle = "AI Ramazon Yordamchi"
	ChatIntro = "Ro'za qoidalari, duolar yoki ma'naviy savollaringiz bo'lsa, bemalol so'rang. Men sizga yordam berishdan mamnunman."
)
