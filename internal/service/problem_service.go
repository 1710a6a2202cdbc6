// internal/service/problem_service.go
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"yanindayim/internal/ai"
	"yanindayim/internal/middleware"
	"yanindayim/internal/model"
	"yanindayim/internal/repository"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// staticResponses maps well-known problem categories to pre-written calming
// answers served verbatim, with no AI round trip.
var staticResponses = map[string]string{
	"ui_diff":        "Endişelenmeyin, bazen uygulamalar güncellenir ve renkler değişebilir. Önemli olan yazan yazılar ve butonların yeridir. Adı aynı olan butona basmanız yeterlidir.",
	"stuck":          "Bazen işlemler takılabilir veya internet yavaşlayabilir. Lütfen 1-2 dakika bekleyin. Eğer hala ilerlemiyorsa, sol üstteki 'Geri' okuna basıp tekrar girmeyi deneyin.",
	"no_sms":         "Kodun gelmesi 1-2 dakika sürebilir. Telefonunuzun çekip çekmediğine bakın. Eğer gelmezse ekrandaki 'Tekrar Gönder' yazısına basabilirsiniz.",
	"mistake":        "Hiç sorun değil! Teknoloji deneme-yanılma ile öğrenilir. Telefonunuzun alt kısmındaki veya sol üstteki 'Geri' tuşuna basarak bir önceki ekrana dönebilirsiniz.",
	"error":          "Hata mesajları bazen korkutucu olabilir ama endişelenmeyin. Genellikle 'Tamam' veya 'Kapat' tuşuna basıp tekrar denemek sorunu çözer. Eğer devam ederse, uygulamayı tamamen kapatıp yeniden açmayı deneyebilirsiniz.",
	"wrong_press":    "Hiç sorun değil! Telefonunuzun 'Geri' tuşuna basarak bir önceki ekrana dönebilirsiniz.",
	"not_understand": "Haklısınız, bazen bu adımlar karmaşık gelebilir. Lütfen derin bir nefes alın. Şimdi ekrandaki adımı en basit haliyle tekrar açıklayacağım.",
}

type ProblemService interface {
	Report(ctx context.Context, req *model.ReportProblemRequest) (*model.GuidanceResponse, error)
	List(ctx context.Context) ([]model.StepProblem, error)
	Delete(ctx context.Context, problemID uint) error
	Clear(ctx context.Context) error
	ExportXLSX(ctx context.Context) ([]byte, error)
}

type problemService struct {
	db          *gorm.DB
	problemRepo repository.ProblemRepository
	guideRepo   repository.GuideRepository
	gateway     ai.Gateway
}

func NewProblemService(db *gorm.DB, problemRepo repository.ProblemRepository, guideRepo repository.GuideRepository, gateway ai.Gateway) ProblemService {
	return &problemService{
		db:          db,
		problemRepo: problemRepo,
		guideRepo:   guideRepo,
		gateway:     gateway,
	}
}

// Report resolves a stuck event to guidance text. Resolution order:
// non-empty history always forces an AI answer that avoids the already-tried
// solutions; otherwise a known category gets its canned answer; otherwise
// "other" with custom text, or any unknown category, goes to the AI. A
// telemetry row is recorded only when both guide and step are known, and a
// telemetry failure never blocks the help answer.
func (s *problemService) Report(ctx context.Context, req *model.ReportProblemRequest) (*model.GuidanceResponse, error) {
	logger := middleware.GetLogger(ctx)

	if req.GuideID != nil && req.StepNumber != nil {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return s.problemRepo.Create(ctx, tx, &model.StepProblem{
				GuideID:    *req.GuideID,
				StepNumber: *req.StepNumber,
			})
		})
		if err != nil {
			logger.Warn("Failed to record step problem", "error", err, "guide_id", *req.GuideID)
		}
	}

	guideTitle := "Genel Yardım"
	stepTitle := "Genel Yardım"
	stepDescription := ""
	var allSteps []ai.GeneratedStep

	if req.GuideID != nil {
		if guide, err := s.guideRepo.FindByID(ctx, s.db, *req.GuideID); err == nil {
			guideTitle = guide.Title
			for _, step := range guide.Steps {
				allSteps = append(allSteps, ai.GeneratedStep{
					StepNumber:  step.StepNumber,
					Title:       step.Title,
					Description: step.Description,
				})
				if req.StepNumber != nil && step.StepNumber == *req.StepNumber {
					stepTitle = step.Title
					stepDescription = step.Description
				}
			}
		}
	}

	guideContext := fmt.Sprintf("Rehber: %s, Şu anki Adım: %s. Adım Detayı: %s", guideTitle, stepTitle, stepDescription)

	problemType := req.ProblemType
	if problemType == "" {
		problemType = "general"
	}

	var guidance string
	switch {
	case len(req.History) > 0:
		query := req.CustomText
		if query == "" {
			if canned, ok := staticResponses[problemType]; ok {
				query = "Sorunum şuydu: " + canned
			} else {
				query = "Sorunum şuydu: " + problemType
			}
		}
		guidance = s.askAI(ctx, ai.HelpRequest{
			Query:          query,
			GuideContext:   guideContext,
			FailedAttempts: req.History,
			AllSteps:       allSteps,
		})

	case staticResponses[problemType] != "":
		guidance = staticResponses[problemType]

	case problemType == "other" && req.CustomText != "":
		guidance = s.askAI(ctx, ai.HelpRequest{
			Query:        req.CustomText,
			GuideContext: guideContext,
			AllSteps:     allSteps,
		})

	default:
		guidance = s.askAI(ctx, ai.HelpRequest{
			Query:        "Sorun tipi: " + problemType,
			GuideContext: guideContext,
			AllSteps:     allSteps,
		})
	}

	return &model.GuidanceResponse{Success: true, Guidance: guidance}, nil
}

// askAI masks gateway failures behind the static unavailability message; the
// user always gets something readable.
func (s *problemService) askAI(ctx context.Context, req ai.HelpRequest) string {
	text, err := s.gateway.HelpResponse(ctx, req)
	if err != nil {
		middleware.GetLogger(ctx).Warn("AI help response unavailable", "error", err)
		return ai.HelpUnavailableMessage
	}
	return text
}

func (s *problemService) List(ctx context.Context) ([]model.StepProblem, error) {
	problems, err := s.problemRepo.ListNewestFirst(ctx, s.db)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing step problems", "error", err)
		return nil, model.ErrInternalServer
	}
	return problems, nil
}

func (s *problemService) Delete(ctx context.Context, problemID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.problemRepo.Delete(ctx, tx, problemID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Transaction failed for Delete problem", "error", err, "problem_id", problemID)
		return model.ErrInternalServer
	}
	return nil
}

func (s *problemService) Clear(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.problemRepo.Clear(ctx, tx)
	})
	if err != nil {
		middleware.GetLogger(ctx).Error("Transaction failed for Clear problems", "error", err)
		return model.ErrInternalServer
	}
	return nil
}

// ExportXLSX renders the telemetry log as a spreadsheet for offline review,
// one row per stuck event with the guide title resolved where possible.
func (s *problemService) ExportXLSX(ctx context.Context) ([]byte, error) {
	logger := middleware.GetLogger(ctx)

	problems, err := s.problemRepo.ListNewestFirst(ctx, s.db)
	if err != nil {
		logger.Error("Error listing step problems for export", "error", err)
		return nil, model.ErrInternalServer
	}

	titles := make(map[uint]string)
	guides, err := s.guideRepo.ListNewestFirst(ctx, s.db)
	if err != nil {
		logger.Error("Error listing guides for export", "error", err)
		return nil, model.ErrInternalServer
	}
	for _, g := range guides {
		titles[g.ID] = g.Title
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sorunlar"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"ID", "Rehber", "Adım", "Tarih"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, p := range problems {
		title, ok := titles[p.GuideID]
		if !ok {
			title = fmt.Sprintf("Silinmiş rehber (#%d)", p.GuideID)
		}
		values := []interface{}{p.ID, title, p.StepNumber, p.CreatedAt.Format("2006-01-02 15:04")}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		logger.Error("Error writing xlsx export", "error", err)
		return nil, model.ErrInternalServer
	}
	return buf.Bytes(), nil
}
