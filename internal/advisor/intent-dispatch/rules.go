package intentdispatch

import "strings"

// Normalize lowercases and trims an utterance before matching.
func Normalize(utterance string) string {
	return strings.ToLower(strings.TrimSpace(utterance))
}

// DefaultRules is the shipped rule table. Order matters: "crop suitability"
// is a crop question, not a weather one.
func DefaultRules() []Rule {
	return []Rule{
		{
			Intent:   IntentCrop,
			Keywords: []string{"crop"},
			Template: Template{Intent: IntentCrop, Body: `🌾 <b>Crop Recommendation</b><br>
Go to: <u>crop.html</u><br>
➤ Enter N, P, K<br>
➤ Enter pH<br>
➤ Enter weather values<br><br>
Click Predict!`},
		},
		{
			Intent:   IntentSuitability,
			Keywords: []string{"weather", "suitability"},
			Template: Template{Intent: IntentSuitability, Body: `🌤️ <b>Weather Suitability Checker</b><br>
Link: <u>weather.html</u><br>
➤ Enter location<br>
➤ See climate match for your crop`},
		},
		{
			Intent:   IntentFertilizer,
			Keywords: []string{"fertilizer", "npk"},
			Template: Template{Intent: IntentFertilizer, Body: `🧪 <b>Fertilizer Advisor</b><br>
Link: <u>fertilizer.html</u><br>
➤ Choose soil type<br>
➤ Enter N, P, K levels<br>
➤ Click Recommend`},
		},
		{
			Intent:   IntentDisease,
			Keywords: []string{"disease", "leaf", "infect"},
			Template: Template{Intent: IntentDisease, Body: `🍃 <b>Disease Detection</b><br>
Link: <u>disease.html</u><br>
➤ Upload leaf photo<br>
➤ System identifies infection`},
		},
		{
			Intent:   IntentGuidance,
			Keywords: []string{"guide", "beginner"},
			Template: Template{Intent: IntentGuidance, Body: `👨‍🌾 <b>Beginner Farmer Guidance</b><br>
1️⃣ Soil testing<br>
2️⃣ Crop planning<br>
3️⃣ Fertilizer schedule<br>
4️⃣ Watering routine<br>
5️⃣ Disease monitoring`},
		},
	}
}

func DefaultTemplate() Template {
	return Template{Intent: IntentClarify, Body: `😊 How can I help you?<br><br>
Try asking:<br>
🌾 Crop Recommendation<br>
🌤️ Weather Suitability<br>
🧪 Fertilizer Advice<br>
🍃 Disease Detection<br>
👨‍🌾 Beginner Guide`}
}

// Classify returns the template of the first rule whose keyword occurs in
// the normalized utterance, or fallback when none does.
func Classify(rules []Rule, fallback Template, utterance string) Template {
	msg := Normalize(utterance)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(msg, kw) {
				return rule.Template
			}
		}
	}
	return fallback
}
