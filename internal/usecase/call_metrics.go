package usecase

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

func (cd *callDashboard) CallMetricsHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 300*time.Second)
	defer cancel()

	// Parse date parameters
	fromDateStr := c.Query("from")
	toDateStr := c.Query("to")

	var fromDate, toDate time.Time
	var err error

	if fromDateStr == "" {
		fromDate = time.Now().In(cd.loc)
	} else {
		fromDate, err = parseHumanReadableDate(fromDateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid 'from' date: %v", err)})
			return
		}
	}

	if toDateStr == "" {
		toDate = time.Now().In(cd.loc)
	} else {
		toDate, err = parseHumanReadableDate(toDateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid 'to' date: %v", err)})
			return
		}
	}

	// The API filters in one reference zone; anchor the range as start of
	// the first day through end of the last day in that zone.
	start, end := cd.dayBounds(fromDate, toDate)

	// Rejected before any network call happens. The range is day-granular,
	// so compare the anchored bounds: a defaulted "now" must not outrank an
	// explicit date on the same day.
	if start.After(end) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("'from' date (%s) cannot be after 'to' date (%s)",
				start.Format("2006-01-02"), end.Format("2006-01-02")),
		})
		return
	}

	page, limit := displayPage(c)

	snap, err := cd.metrics.CallMetrics(ctx, start, end)
	if err != nil {
		log.Printf("Failed to fetch call metrics: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": fmt.Sprintf("Failed to fetch call data: %v", err)})
		return
	}

	total := int64(len(snap.Rows))
	skip := int64(page-1) * int64(limit)
	if skip > total {
		skip = total
	}
	upper := skip + int64(limit)
	if upper > total {
		upper = total
	}
	totalPages := (total + int64(limit) - 1) / int64(limit)

	// Echo the exact bounds sent upstream so partial results can be
	// correlated with what the API was actually asked for.
	meta := gin.H{
		"from":       start.Format(time.RFC3339),
		"to":         end.Format(time.RFC3339),
		"page":       page,
		"limit":      limit,
		"total":      total,
		"totalPages": totalPages,
		"partial":    snap.Partial,
	}
	if snap.Partial {
		meta["fetch_error"] = snap.FetchErr
	}

	c.JSON(http.StatusOK, gin.H{
		"meta":    meta,
		"summary": snap.Aggregate,
		"data":    snap.Rows[skip:upper],
	})
}

// dayBounds anchors the range as 00:00:01 of the first day through 23:59:59
// of the last day in the reference zone.
func (cd *callDashboard) dayBounds(fromDate, toDate time.Time) (time.Time, time.Time) {
	start := time.Date(fromDate.Year(), fromDate.Month(), fromDate.Day(), 0, 0, 1, 0, cd.loc)
	end := time.Date(toDate.Year(), toDate.Month(), toDate.Day(), 23, 59, 59, 0, cd.loc)
	return start, end
}

// displayPage reads the detail-table pagination from the request. Display
// paging is request state only; nothing is held between invocations.
func displayPage(c *gin.Context) (int, int) {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "25")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page <= 0 {
		page = 1
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 25
	}
	return page, limit
}

// parseHumanReadableDate parses a human-readable date string into time.Time
func parseHumanReadableDate(dateStr string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"02-01-2006",
		"01/02/2006",
		"02/01/2006",
		"20060102",
		"2006-1-2",
		"2-1-2006",
		"January 2, 2006",
		"2 January 2006",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date '%s'. Supported formats: YYYY-MM-DD, DD-MM-YYYY, MM/DD/YYYY, DD/MM/YYYY, YYYYMMDD", dateStr)
}
