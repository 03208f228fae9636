package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/odenysenko/postlens/internal/analytics"
	"github.com/odenysenko/postlens/internal/export"
	"github.com/odenysenko/postlens/internal/model"
)

func (s *Server) listAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"accounts": s.pipe.Accounts()})
}

// accountPosts serves the normalized post feed with the feed-level filters:
// free text (including url), platform, year and a minimum-reactions floor.
func (s *Server) accountPosts(c *gin.Context) {
	account := c.Param("account")
	if !s.pipe.HasAccount(account) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown account"})
		return
	}

	minReactions, _ := strconv.Atoi(c.Query("min_reactions"))
	filter := analytics.FeedFilter{
		Search:       c.Query("search"),
		Platform:     c.Query("platform"),
		Year:         c.Query("year"),
		MinReactions: minReactions,
	}

	posts := s.pipe.LoadAccountPosts(c.Request.Context(), account)
	posts = analytics.SortNewestFirst(posts)
	posts = analytics.FilterFeed(posts, filter)

	c.JSON(http.StatusOK, gin.H{
		"account": account,
		"total":   len(posts),
		"posts":   posts,
	})
}

// accountAnalytics serves enriched posts plus summary. Without filter params
// it returns the account snapshot (day timeline); with any filter active it
// recomputes the summary from the filtered set with a month timeline, the
// dashboard view. Filter option lists always come from the full snapshot.
func (s *Server) accountAnalytics(c *gin.Context) {
	account := c.Param("account")
	if !s.pipe.HasAccount(account) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown account"})
		return
	}

	snapshot := s.snapshot(c, account)
	filter, requested := parseFilterState(c)

	// A request that names no filter param gets the raw snapshot.
	// Naming one, even with its default value (include_noise=false), asks
	// for the filtered dashboard view.
	if !requested && !filter.Active() {
		c.JSON(http.StatusOK, snapshot)
		return
	}

	filtered := analytics.Filter(snapshot.Posts, filter)
	summary := analytics.Summarize(filtered, analytics.BucketMonth)
	summary.Filters = snapshot.Summary.Filters

	c.JSON(http.StatusOK, model.AccountAnalytics{
		Account: account,
		Posts:   filtered,
		Summary: summary,
	})
}

// exportFiltered streams the filtered enriched set as CSV. The default
// filter state applies, so noise posts are excluded unless include_noise is
// set.
func (s *Server) exportFiltered(c *gin.Context) {
	account := c.Param("account")
	if !s.pipe.HasAccount(account) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown account"})
		return
	}

	snapshot := s.snapshot(c, account)
	filter, _ := parseFilterState(c)
	filtered := analytics.Filter(snapshot.Posts, filter)

	fileName := export.FileName(account, time.Now().UTC())
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.String(http.StatusOK, export.Render(filtered))
}

// exportRaw streams the account's source files: the keyword dictionary, one
// dataset (addressed by file name or stem), or every dataset concatenated.
func (s *Server) exportRaw(c *gin.Context) {
	account := c.Param("account")
	acct, ok := s.accountConfig(account)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown account"})
		return
	}

	target := c.Param("target")
	switch target {
	case "keywords":
		if acct.KeywordsFile == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "account has no keyword config"})
			return
		}
		s.attachFile(c, acct.KeywordsFile, "application/json")

	case "combined":
		if len(acct.Datasets) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "account has no datasets"})
			return
		}
		var parts []string
		for _, file := range acct.Datasets {
			data, err := os.ReadFile(s.pipe.DataPath(file))
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read dataset files"})
				return
			}
			parts = append(parts, strings.TrimSpace(string(data)))
		}
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", `attachment; filename="combined_posts.csv"`)
		c.String(http.StatusOK, strings.Join(parts, "\n"))

	default:
		for _, file := range acct.Datasets {
			if file == target || strings.TrimSuffix(file, filepath.Ext(file)) == target {
				s.attachFile(c, file, "text/csv; charset=utf-8")
				return
			}
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported export target"})
	}
}

func (s *Server) attachFile(c *gin.Context, file, contentType string) {
	path := s.pipe.DataPath(file)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}
	c.Header("Content-Type", contentType)
	c.FileAttachment(path, filepath.Base(file))
}

func (s *Server) accountConfig(account string) (model.AccountConfig, bool) {
	acct, ok := s.cfg.Accounts[account]
	return acct, ok
}

// snapshot returns the account analytics, via the TTL cache when enabled.
func (s *Server) snapshot(c *gin.Context, account string) *model.AccountAnalytics {
	if cached, ok := s.snapshots.Get(account); ok {
		return cached
	}
	snapshot := s.pipe.LoadAccountAnalytics(c.Request.Context(), account)
	s.snapshots.Set(account, snapshot)
	return snapshot
}

// filterParams are the recognized analytics filter query parameters.
var filterParams = []string{"matched_query", "author", "start", "end", "include_noise", "search"}

// parseFilterState reads the filter params from the request. The second
// return reports whether any recognized param was present at all, so an
// explicit default value still selects the filtered view.
func parseFilterState(c *gin.Context) (analytics.FilterState, bool) {
	query := c.Request.URL.Query()
	requested := false
	for _, param := range filterParams {
		if _, ok := query[param]; ok {
			requested = true
			break
		}
	}

	includeNoise, _ := strconv.ParseBool(c.DefaultQuery("include_noise", "false"))
	return analytics.FilterState{
		MatchedQuery: c.Query("matched_query"),
		Author:       c.Query("author"),
		StartDate:    c.Query("start"),
		EndDate:      c.Query("end"),
		IncludeNoise: includeNoise,
		Search:       c.Query("search"),
	}, requested
}
