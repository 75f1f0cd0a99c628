package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	config "github.com/prepwise/mock_interview/configs"
	"github.com/prepwise/mock_interview/database"
	"github.com/prepwise/mock_interview/models"
)

type reportEntry struct {
	Number     int
	Question   string
	UserAns    string
	CorrectAns string
	Feedback   string
	Rating     string
}

// GenerateFeedbackReport renders the deduplicated feedback of a session as a
// PDF, uploads it to Cloudinary and persists the resulting report row.
func GenerateFeedbackReport(session *models.InterviewSession, answers []models.AnswerRecord, userEmail string) (*models.FeedbackReport, error) {
	avg := AverageRating(answers)

	htmlData, err := renderReportHTML(session, answers, avg)
	if err != nil {
		log.Printf("🔥 Failed to render report HTML: %v", err)
		return nil, err
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate report PDF: %v", err)
		return nil, err
	}

	reportURL, err := uploadReportToCloudinary(pdfBytes, session.MockID)
	if err != nil {
		log.Printf("🔥 Failed to upload report to Cloudinary: %v", err)
		return nil, err
	}

	report := models.FeedbackReport{
		MockIDRef:     session.MockID,
		UserEmail:     userEmail,
		AverageRating: avg,
		ReportURL:     reportURL,
		GeneratedAt:   time.Now(),
	}
	if err := database.DB.Create(&report).Error; err != nil {
		log.Printf("🔥 Failed to create feedback report record for interview %s: %v", session.MockID, err)
		return nil, err
	}

	return &report, nil
}

func renderReportHTML(session *models.InterviewSession, answers []models.AnswerRecord, avg *float64) (string, error) {
	tmpl, err := template.ParseFiles("templates/report.html")
	if err != nil {
		return "", err
	}

	entries := make([]reportEntry, len(answers))
	for i, a := range answers {
		rating := "Not Rated"
		if a.Rating != nil {
			rating = fmt.Sprintf("%.1f/10", *a.Rating)
		}
		entries[i] = reportEntry{
			Number:     i + 1,
			Question:   a.Question,
			UserAns:    a.UserAns,
			CorrectAns: a.CorrectAns,
			Feedback:   a.Feedback,
			Rating:     rating,
		}
	}

	overall := "Not Rated"
	if avg != nil {
		overall = fmt.Sprintf("%.1f/10", *avg)
	}

	data := struct {
		JobPosition   string
		OverallRating string
		GeneratedOn   string
		Entries       []reportEntry
	}{
		JobPosition:   session.JobPosition,
		OverallRating: overall,
		GeneratedOn:   time.Now().Format("January 2, 2006"),
		Entries:       entries,
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReportToCloudinary(fileBytes []byte, mockID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("reports/%s_%s", mockID, uuid.New().String()),
		Folder:       "mock_interview_reports",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
