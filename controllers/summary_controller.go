package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"gitea.com/go-chi/session"

	"github.com/clipdigest/clipdigest/models"
	"github.com/clipdigest/clipdigest/publisher"
	"github.com/clipdigest/clipdigest/services"
)

// SummaryController handles summarization and posting requests
type SummaryController struct {
	services *services.Services
}

// NewSummaryController creates a new summary controller
func NewSummaryController(services *services.Services) *SummaryController {
	return &SummaryController{
		services: services,
	}
}

// homeData is the template payload shared by the home and result pages
type homeData struct {
	Title             string
	CurrentPage       string
	Error             string
	Success           string
	Platforms         []string
	TwitterConnected  bool
	LinkedInConnected bool
	Summary           *models.Summary
	CharacterCount    int
	CharacterLimit    int
}

// Index handles GET /
func (c *SummaryController) Index(w http.ResponseWriter, r *http.Request) {
	data := c.baseData(r, "ClipDigest", "home")
	renderTemplate(w, "home", "templates/home.html", data)
}

// Summarize handles POST /summarize
func (c *SummaryController) Summarize(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := &models.SummarizeForm{
		YouTubeURL: r.FormValue("youtube_url"),
		Platform:   r.FormValue("platform"),
	}

	summary, err := c.services.Summary.Summarize(r.Context(), form)
	if err != nil {
		data := c.baseData(r, "ClipDigest", "home")
		data.Error = err.Error()
		renderTemplateWithStatus(w, http.StatusBadRequest, "home", "templates/home.html", data)
		return
	}

	// Remember the summary so the posting step survives a page reload
	sess := session.GetSession(r)
	sess.Set("pending_post", summary.ID)

	c.renderResult(w, r, summary, "")
}

// Post handles POST /post
func (c *SummaryController) Post(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	summaryID, err := strconv.Atoi(r.FormValue("summary_id"))
	if err != nil {
		http.Error(w, "Invalid summary ID", http.StatusBadRequest)
		return
	}

	summary, err := c.services.Summary.GetByID(summaryID)
	if err != nil {
		http.Error(w, "Summary not found", http.StatusNotFound)
		return
	}

	sess := session.GetSession(r)
	accessToken, _ := sess.Get(summary.Platform + "_token").(string)
	if accessToken == "" {
		c.renderResult(w, r, summary, "Connect your "+summary.Platform+" account before posting")
		return
	}

	personID, _ := sess.Get("linkedin_urn").(string)

	result, err := c.services.Publish.Publish(r.Context(), summaryID, accessToken, personID)
	if err != nil {
		c.renderResult(w, r, summary, publishErrorMessage(err, sess, summary.Platform))
		return
	}

	sess.Delete("pending_post")
	setFlash(r, "success", "Posted to "+summary.Platform+": "+result.PostURL)
	http.Redirect(w, r, "/history", http.StatusSeeOther)
}

// History handles GET /history
func (c *SummaryController) History(w http.ResponseWriter, r *http.Request) {
	summaries, err := c.services.Summary.GetRecent(20)
	if err != nil {
		http.Error(w, "Failed to load history: "+err.Error(), http.StatusInternalServerError)
		return
	}

	templateData := struct {
		Title       string
		CurrentPage string
		Error       string
		Success     string
		Summaries   []models.Summary
	}{
		Title:       "History",
		CurrentPage: "history",
		Error:       popFlash(r, "error"),
		Success:     popFlash(r, "success"),
		Summaries:   summaries,
	}

	renderTemplate(w, "history", "templates/history.html", templateData)
}

// Health handles GET /health
func (c *SummaryController) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// baseData builds the shared template payload from the session
func (c *SummaryController) baseData(r *http.Request, title, page string) *homeData {
	sess := session.GetSession(r)

	twitterToken, _ := sess.Get("twitter_token").(string)
	linkedinToken, _ := sess.Get("linkedin_token").(string)

	return &homeData{
		Title:             title,
		CurrentPage:       page,
		Error:             popFlash(r, "error"),
		Success:           popFlash(r, "success"),
		Platforms:         models.SupportedPlatforms(),
		TwitterConnected:  twitterToken != "",
		LinkedInConnected: linkedinToken != "",
	}
}

// renderResult shows the summary result page with posting controls
func (c *SummaryController) renderResult(w http.ResponseWriter, r *http.Request, summary *models.Summary, errorMessage string) {
	data := c.baseData(r, "Summary", "home")
	data.Summary = summary
	data.CharacterCount = models.CharacterCount(summary.PostText)
	if cfg, err := models.GetPlatformConfig(summary.Platform); err == nil {
		data.CharacterLimit = cfg.MaxChars
	}
	if errorMessage != "" {
		data.Error = errorMessage
	}

	renderTemplate(w, "result", "templates/result.html", data)
}

// publishErrorMessage maps publish failures onto user-facing guidance. An
// auth failure also drops the stale token so the UI prompts a reconnect.
func publishErrorMessage(err error, sess session.Store, platform string) string {
	var authErr *publisher.AuthError
	if errors.As(err, &authErr) {
		sess.Delete(platform + "_token")
		return "Your " + platform + " session expired. Please reconnect the account and try again."
	}

	var rateErr *publisher.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Sprintf("%s is rate limiting posts. Try again in %d minutes.", platform, rateErr.RetryAfter/60)
	}

	var apiErr *publisher.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("%s rejected the post (status %d).", platform, apiErr.StatusCode)
	}

	return "Failed to post: " + err.Error()
}
