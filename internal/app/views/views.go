// Package views holds the server-rendered registration page.
package views

import (
	"embed"
	"errors"
	"html/template"
	"strings"

	"github.com/yigit/teamreg/internal/app/models"
	"github.com/yigit/teamreg/internal/app/services"
	"github.com/yigit/teamreg/internal/pkg/apperrors"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Template names
const (
	IndexTemplate   = "index.tmpl"
	ErrorTemplate   = "error.tmpl"
	LoadingTemplate = "loading.tmpl"
)

const (
	// LoadFailedMessage is the fixed diagnostic shown when the initial load failed
	LoadFailedMessage = "ไม่สามารถโหลดข้อมูลได้ กรุณาตรวจสอบว่า URL ของ Google Apps Script ถูกต้องและสคริปต์ทำงานได้"
	// NotConfiguredMessage is shown when no script URL was configured
	NotConfiguredMessage = "กรุณาตั้งค่า URL ของ Google Apps Script (gateway.url หรือ GATEWAY_URL)"
	// LoadingMessage is shown until the initial load finishes
	LoadingMessage = "กำลังโหลดข้อมูล..."
)

// LoadingRefreshSeconds is how often the loading view reloads itself
const LoadingRefreshSeconds = 2

// Page is everything the registration page renders
type Page struct {
	Categories     []models.Category
	CategoryFilter string
	ActivityFilter string
	// FilterOptions feeds the activity filter dropdown
	FilterOptions []models.Activity
	// Activities are the cards matching both filters
	Activities    []models.Activity
	AllActivities []models.Activity

	Form         services.WorkflowView
	FormActivity *models.Activity
	Notice       *services.Notice

	Teams     []services.TeamRow
	Report    []services.ReportRow
	FileTypes []models.FileType
}

// StepNumbers lists the form steps for the progress header
func (p *Page) StepNumbers() []services.Step {
	return services.Steps()
}

// ErrorPage is the full-screen load-failure view
type ErrorPage struct {
	Message string
}

// NewErrorPage picks the diagnostic for a failed initial load
func NewErrorPage(err error) ErrorPage {
	if errors.Is(err, apperrors.ErrGatewayNotConfigured) {
		return ErrorPage{Message: NotConfiguredMessage}
	}
	return ErrorPage{Message: LoadFailedMessage}
}

// LoadingPage is the full-screen view shown while the initial load runs
type LoadingPage struct {
	Message        string
	RefreshSeconds int
}

// NewLoadingPage returns the loading view
func NewLoadingPage() LoadingPage {
	return LoadingPage{Message: LoadingMessage, RefreshSeconds: LoadingRefreshSeconds}
}

var funcs = template.FuncMap{
	"inc":  func(i int) int { return i + 1 },
	"join": func(s []string) string { return strings.Join(s, ", ") },
	// progress is the width of the step bar in percent
	"progress": func(step services.Step) int { return (int(step) - 1) * 50 },
}

// Load parses the embedded templates
func Load() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
}
