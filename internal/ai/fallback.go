// internal/ai/fallback.go
package ai

import "math/rand/v2"

// ValidImageURLs is the placeholder set guide steps may reference. Model
// output pointing anywhere else is rewritten to a random member so a broken
// path never reaches the client.
var ValidImageURLs = []string{
	"/static/img/ui_app_open.png",
	"/static/img/ui_login.png",
	"/static/img/ui_selection.png",
	"/static/img/ui_security.png",
	"/static/img/ui_calendar.png",
	"/static/img/ui_success.png",
	"/static/img/ui_physical_visit.png",
}

// HelpUnavailableMessage is what a stuck user reads when the AI collaborator
// cannot be reached. It steers them back to the canned help options.
const HelpUnavailableMessage = "Şu an yapay zeka servisine ulaşamıyorum. Lütfen 'Devam Edemiyorum' gibi hazır seçenekleri kullanın."

var defaultHelpOptions = []string{
	"Bende farklı görünüyor",
	"Devam edemiyorum",
	"Kod/SMS gelmedi",
	"Yanlış bir şeye bastım",
	"Başka bir sorun",
}

func normalizeImages(guide *GeneratedGuide) {
	valid := make(map[string]struct{}, len(ValidImageURLs))
	for _, u := range ValidImageURLs {
		valid[u] = struct{}{}
	}
	for i := range guide.Steps {
		if _, ok := valid[guide.Steps[i].ImageURL]; !ok {
			guide.Steps[i].ImageURL = ValidImageURLs[rand.IntN(len(ValidImageURLs))]
		}
	}
}

// MockGuide is the deterministic draft used when no AI backend is reachable.
// It keeps the admin authoring flow usable in demos and local development.
func MockGuide(prompt string) *GeneratedGuide {
	return &GeneratedGuide{
		Title: prompt + " Rehberi (Demo)",
		Steps: []GeneratedStep{
			{
				StepNumber:  1,
				Title:       "Hazırlık",
				Description: "Lütfen önce internetinizin açık olduğundan emin olun. Acele etmemize gerek yok.",
				ImageURL:    "/static/img/ui_app_open.png",
			},
			{
				StepNumber:  2,
				Title:       "Uygulamayı Açın",
				Description: prompt + " işlemi için ilgili resmi uygulamayı telefonunuzdan bulun ve üzerine dokunun.",
				ImageURL:    "/static/img/ui_app_open.png",
			},
			{
				StepNumber:  3,
				Title:       "Giriş Yapın",
				Description: "Eğer şifre sorarsa, bilgilerinizi sakince girin. Ekrandaki kutucuklara tıklayabilirsiniz.",
				ImageURL:    "/static/img/ui_login.png",
			},
			{
				StepNumber:  4,
				Title:       "İşlemi Bulun",
				Description: "Ana ekranda yapmak istediğiniz işlemi arayın. Genellikle büyük butonlarla gösterilir.",
				ImageURL:    "/static/img/ui_selection.png",
			},
			{
				StepNumber:  5,
				Title:       "Onaylayın",
				Description: "Bilgilerinizi kontrol edip onay tuşuna basın. Yanlış yaparsanız geri dönebilirsiniz.",
				ImageURL:    "/static/img/ui_success.png",
			},
		},
		HelpOptions: append([]string(nil), defaultHelpOptions...),
	}
}

// FallbackScenario is the fixed fraud drill served when generation fails or
// the backend is disabled. It must always be safe to show verbatim.
func FallbackScenario() *FraudScenarioResult {
	return &FraudScenarioResult{
		Scenario:      "Telefonda biri aradı, 'Ben savcıyım, adınız terör örgütüne karıştı, acil para göndermeniz lazım' dedi.",
		CorrectAction: "hangup",
		Explanation:   "Devlet görevlileri (savcı, polis) asla telefonda para istemez. Bu klasik bir dolandırıcılık yöntemidir.",
	}
}
