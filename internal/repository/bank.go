package repository

import (
	"facit-game/internal/models"
)

// SeedQuestions returns the pre-generated bank for a language. Unknown
// languages get the English bank.
func SeedQuestions(language models.Language) []models.Question {
	var bank []models.Question
	switch language {
	case models.LanguageSwedish:
		bank = swedishBank
	default:
		bank = englishBank
	}
	out := make([]models.Question, len(bank))
	copy(out, bank)
	return out
}

var englishBank = []models.Question{
	{
		ID:        "q1",
		Statement: "Honey never spoils. Archaeologists have found 3,000-year-old honey in Egyptian tombs that was still edible.",
		IsTrue:    true,
		Category:  "Food & Science",
		Source:    "Smithsonian Magazine",
	},
	{
		ID:        "q2",
		Statement: "The Great Wall of China is visible from space with the naked eye.",
		IsTrue:    false,
		Category:  "Geography",
		Source:    "NASA",
	},
	{
		ID:        "q3",
		Statement: "Octopuses have three hearts.",
		IsTrue:    true,
		Category:  "Animals",
		Source:    "National Geographic",
	},
	{
		ID:        "q4",
		Statement: "Lightning never strikes the same place twice.",
		IsTrue:    false,
		Category:  "Nature",
		Source:    "NOAA",
	},
	{
		ID:        "q5",
		Statement: "Bananas are berries, but strawberries are not.",
		IsTrue:    true,
		Category:  "Botany",
		Source:    "Stanford University",
	},
	{
		ID:        "q6",
		Statement: "Humans use only 10% of their brains.",
		IsTrue:    false,
		Category:  "Biology",
		Source:    "Scientific American",
	},
	{
		ID:        "q7",
		Statement: "Venus is the hottest planet in our solar system, despite not being the closest to the Sun.",
		IsTrue:    true,
		Category:  "Space",
		Source:    "NASA",
	},
	{
		ID:        "q8",
		Statement: "Goldfish have a memory span of only 3 seconds.",
		IsTrue:    false,
		Category:  "Animals",
		Source:    "University of Plymouth",
	},
	{
		ID:        "q9",
		Statement: "A group of flamingos is called a 'flamboyance'.",
		IsTrue:    true,
		Category:  "Animals",
		Source:    "Audubon Society",
	},
	{
		ID:        "q10",
		Statement: "Mount Everest is the tallest mountain when measured from base to peak.",
		IsTrue:    false,
		Category:  "Geography",
		Source:    "USGS (Mauna Kea is taller base-to-peak)",
	},
	{
		ID:        "q11",
		Statement: "Cleopatra lived closer in time to the Moon landing than to the building of the Great Pyramid.",
		IsTrue:    true,
		Category:  "History",
		Source:    "History.com",
	},
	{
		ID:        "q12",
		Statement: "Diamonds are made from compressed coal.",
		IsTrue:    false,
		Category:  "Geology",
		Source:    "Geological Society of America",
	},
	{
		ID:        "q13",
		Statement: "A day on Venus is longer than a year on Venus.",
		IsTrue:    true,
		Category:  "Space",
		Source:    "NASA",
	},
	{
		ID:        "q14",
		Statement: "Sushi means 'raw fish' in Japanese.",
		IsTrue:    false,
		Category:  "Language",
		Source:    "It means 'sour rice'",
	},
	{
		ID:        "q15",
		Statement: "Sharks are older than trees. Sharks have existed for around 400 million years, while trees appeared about 350 million years ago.",
		IsTrue:    true,
		Category:  "Natural History",
		Source:    "Smithsonian",
	},
	{
		ID:        "q16",
		Statement: "Napoleon Bonaparte was unusually short for his time.",
		IsTrue:    false,
		Category:  "History",
		Source:    "He was ~5'7\", average for the era",
	},
	{
		ID:        "q17",
		Statement: "Scotland's national animal is the unicorn.",
		IsTrue:    true,
		Category:  "Culture",
		Source:    "Royal Scottish Government",
	},
	{
		ID:        "q18",
		Statement: "The tongue is the strongest muscle in the human body.",
		IsTrue:    false,
		Category:  "Biology",
		Source:    "Library of Congress",
	},
	{
		ID:        "q19",
		Statement: "There are more possible iterations of a game of chess than there are atoms in the observable universe.",
		IsTrue:    true,
		Category:  "Mathematics",
		Source:    "Shannon number estimation",
	},
	{
		ID:        "q20",
		Statement: "Bulls are angered by the color red.",
		IsTrue:    false,
		Category:  "Animals",
		Source:    "MythBusters / Animal science",
	},
}

var swedishBank = []models.Question{
	{
		ID:        "sv1",
		Statement: "Honung blir aldrig dålig. Arkeologer har hittat 3 000 år gammal honung i egyptiska gravar som fortfarande var ätbar.",
		IsTrue:    true,
		Category:  "Mat & vetenskap",
		Source:    "Smithsonian Magazine",
	},
	{
		ID:        "sv2",
		Statement: "Kinesiska muren syns från rymden med blotta ögat.",
		IsTrue:    false,
		Category:  "Geografi",
		Source:    "NASA",
	},
	{
		ID:        "sv3",
		Statement: "Bläckfiskar har tre hjärtan.",
		IsTrue:    true,
		Category:  "Djur",
		Source:    "National Geographic",
	},
	{
		ID:        "sv4",
		Statement: "Blixten slår aldrig ner på samma ställe två gånger.",
		IsTrue:    false,
		Category:  "Natur",
		Source:    "NOAA",
	},
	{
		ID:        "sv5",
		Statement: "Bananer är bär, men jordgubbar är det inte.",
		IsTrue:    true,
		Category:  "Botanik",
		Source:    "Stanford University",
	},
	{
		ID:        "sv6",
		Statement: "Människor använder bara 10 % av sin hjärna.",
		IsTrue:    false,
		Category:  "Biologi",
		Source:    "Scientific American",
	},
	{
		ID:        "sv7",
		Statement: "Venus är den hetaste planeten i vårt solsystem, trots att den inte är närmast solen.",
		IsTrue:    true,
		Category:  "Rymden",
		Source:    "NASA",
	},
	{
		ID:        "sv8",
		Statement: "Guldfiskar har ett minne på bara tre sekunder.",
		IsTrue:    false,
		Category:  "Djur",
		Source:    "University of Plymouth",
	},
	{
		ID:        "sv9",
		Statement: "En grupp flamingor kallas på engelska för en 'flamboyance'.",
		IsTrue:    true,
		Category:  "Djur",
		Source:    "Audubon Society",
	},
	{
		ID:        "sv10",
		Statement: "Mount Everest är det högsta berget mätt från bas till topp.",
		IsTrue:    false,
		Category:  "Geografi",
		Source:    "USGS (Mauna Kea är högre från bas till topp)",
	},
	{
		ID:        "sv11",
		Statement: "Kleopatra levde närmare i tid månlandningen än byggandet av den stora pyramiden.",
		IsTrue:    true,
		Category:  "Historia",
		Source:    "History.com",
	},
	{
		ID:        "sv12",
		Statement: "Diamanter bildas av sammanpressat kol från stenkol.",
		IsTrue:    false,
		Category:  "Geologi",
		Source:    "Geological Society of America",
	},
	{
		ID:        "sv13",
		Statement: "Ett dygn på Venus är längre än ett år på Venus.",
		IsTrue:    true,
		Category:  "Rymden",
		Source:    "NASA",
	},
	{
		ID:        "sv14",
		Statement: "Sushi betyder 'rå fisk' på japanska.",
		IsTrue:    false,
		Category:  "Språk",
		Source:    "Det betyder 'surt ris'",
	},
	{
		ID:        "sv15",
		Statement: "Hajar är äldre än träd. Hajar har funnits i cirka 400 miljoner år, medan träd dök upp för ungefär 350 miljoner år sedan.",
		IsTrue:    true,
		Category:  "Naturhistoria",
		Source:    "Smithsonian",
	},
	{
		ID:        "sv16",
		Statement: "Napoleon Bonaparte var ovanligt kort för sin tid.",
		IsTrue:    false,
		Category:  "Historia",
		Source:    "Han var cirka 170 cm, genomsnittligt för sin tid",
	},
	{
		ID:        "sv17",
		Statement: "Skottlands nationaldjur är enhörningen.",
		IsTrue:    true,
		Category:  "Kultur",
		Source:    "Skotska regeringen",
	},
	{
		ID:        "sv18",
		Statement: "Tungan är den starkaste muskeln i människokroppen.",
		IsTrue:    false,
		Category:  "Biologi",
		Source:    "Library of Congress",
	},
	{
		ID:        "sv19",
		Statement: "Det finns fler möjliga schackpartier än atomer i det observerbara universum.",
		IsTrue:    true,
		Category:  "Matematik",
		Source:    "Shannons uppskattning",
	},
	{
		ID:        "sv20",
		Statement: "Tjurar blir arga av färgen röd.",
		IsTrue:    false,
		Category:  "Djur",
		Source:    "MythBusters / djurforskning",
	},
}
