package web

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/rohitvarshney-web/schengen-slots/internal/dashboard"
	"github.com/rohitvarshney-web/schengen-slots/internal/model"
	"github.com/rohitvarshney-web/schengen-slots/internal/slots"
)

type bookingRequest struct {
	Country string `json:"country" form:"country" binding:"required"`
	City    string `json:"city" form:"city" binding:"required"`
	Date    string `json:"date" form:"date" binding:"required"`
}

// bookingForm is the HTML variant; the country comes from the path.
type bookingForm struct {
	City string `form:"city" binding:"required"`
	Date string `form:"date" binding:"required"`
}

type bookingResponse struct {
	Reference string `json:"reference"`
	Country   string `json:"country"`
	City      string `json:"city"`
	Date      string `json:"date"`
	Status    string `json:"status"`
}

// ---------------------------------------------------
// JSON API
// ---------------------------------------------------

func (s *Server) listCountries(c *gin.Context) {
	res, err := s.provider.Countries(c.Request.Context())
	if err != nil {
		mapError(c, err)
		return
	}
	res.Countries = dashboard.Filter(res.Countries, c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"countries": res.Countries,
		"source":    res.Source,
		"advisory":  res.Advisory,
		"fetchedAt": res.FetchedAt,
		"stats":     dashboard.ComputeStats(res.Countries),
	})
}

func (s *Server) getSlots(c *gin.Context) {
	ctx := c.Request.Context()
	if _, err := s.country(ctx, c.Param("code")); err != nil {
		mapError(c, err)
		return
	}
	res, err := s.provider.Summary(ctx, c.Param("code"))
	if err != nil {
		mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) createBooking(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := s.book(c.Request.Context(), req)
	if err != nil {
		mapError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, bookingResponse{
		Reference: b.Reference.String(),
		Country:   b.CountryCode,
		City:      b.City,
		Date:      model.DateKey(b.Date),
		Status:    "logged",
	})
}

// ---------------------------------------------------
// HTML pages
// ---------------------------------------------------

func (s *Server) listPage(c *gin.Context) {
	res, err := s.provider.Countries(c.Request.Context())
	if err != nil {
		mapErrorHTML(c, err)
		return
	}
	q := c.Query("q")
	c.HTML(http.StatusOK, "list.html", gin.H{
		"Title":     "Schengen appointments",
		"Query":     q,
		"Countries": dashboard.Filter(res.Countries, q),
		"Stats":     dashboard.ComputeStats(res.Countries),
		"Advisory":  res.Advisory,
	})
}

func (s *Server) detailPage(c *gin.Context) {
	d, res, err := s.detail(c.Request.Context(), c.Param("code"), c.Query("city"), c.Query("date"), c.Query("month"))
	if err != nil {
		mapErrorHTML(c, err)
		return
	}
	c.HTML(http.StatusOK, "detail.html", s.detailData(d, res.Advisory, ""))
}

func (s *Server) bookForm(c *gin.Context) {
	var form bookingForm
	if err := c.ShouldBind(&form); err != nil {
		mapErrorHTML(c, fmt.Errorf("%w: %v", ErrMissingField, err))
		return
	}
	req := bookingRequest{Country: c.Param("code"), City: form.City, Date: form.Date}
	b, err := s.book(c.Request.Context(), req)
	if err != nil {
		mapErrorHTML(c, err)
		return
	}
	d, res, err := s.detail(c.Request.Context(), req.Country, b.City, model.DateKey(b.Date), "")
	if err != nil {
		mapErrorHTML(c, err)
		return
	}
	status := fmt.Sprintf("Booking request logged for %s on %s (ref %s). Nothing was submitted.",
		b.City, model.DateKey(b.Date), b.Reference.String())
	c.HTML(http.StatusAccepted, "detail.html", s.detailData(d, res.Advisory, status))
}

// ---------------------------------------------------
// shared
// ---------------------------------------------------

func (s *Server) country(ctx context.Context, code string) (model.Country, error) {
	res, err := s.provider.Countries(ctx)
	if err != nil {
		return model.Country{}, err
	}
	cn, ok := dashboard.Find(res.Countries, code)
	if !ok {
		return model.Country{}, fmt.Errorf("%w: %s", ErrUnknownCountry, model.NormalizeCode(code))
	}
	return cn, nil
}

// detail rebuilds the drill-down state from query parameters. A well-formed
// date the city does not offer is ignored.
func (s *Server) detail(ctx context.Context, code, city, date, month string) (*dashboard.Detail, slots.SummaryResult, error) {
	cn, err := s.country(ctx, code)
	if err != nil {
		return nil, slots.SummaryResult{}, err
	}
	res, err := s.provider.Summary(ctx, cn.Code)
	if err != nil {
		return nil, slots.SummaryResult{}, err
	}
	d := dashboard.NewDetail(cn.WithSummary(res.Summary), res.Summary, s.now)

	if city != "" {
		if err := d.SelectCity(city); err != nil {
			return nil, res, fmt.Errorf("%w: %s", err, city)
		}
	}
	if date != "" {
		day, err := time.Parse(model.DateLayout, date)
		if err != nil {
			return nil, res, ErrBadDate
		}
		_ = d.SelectDate(day)
	}
	if month != "" {
		m, err := time.Parse("2006-01", month)
		if err != nil {
			return nil, res, ErrBadMonth
		}
		d.SetMonth(m)
	}
	return d, res, nil
}

// book validates a booking against the loaded availability and logs it.
// Nothing is submitted anywhere.
func (s *Server) book(ctx context.Context, req bookingRequest) (model.Booking, error) {
	if req.Country == "" || req.City == "" || req.Date == "" {
		return model.Booking{}, ErrMissingField
	}
	day, err := time.Parse(model.DateLayout, req.Date)
	if err != nil {
		return model.Booking{}, ErrBadDate
	}
	d, _, err := s.detail(ctx, req.Country, req.City, "", "")
	if err != nil {
		return model.Booking{}, err
	}
	if err := d.SelectDate(day); err != nil {
		return model.Booking{}, err
	}
	b, err := d.Book()
	if err != nil {
		return model.Booking{}, err
	}
	log.WithFields(log.Fields{
		"reference": b.Reference.String(),
		"country":   b.CountryCode,
		"city":      b.City,
		"date":      model.DateKey(b.Date),
	}).Info("booking requested (placeholder, not submitted)")
	return b, nil
}

type cityLink struct {
	Name     string
	Slots    int
	Selected bool
	URL      string
}

type dateLink struct {
	Date     time.Time
	Count    int
	Selected bool
	URL      string
}

func (s *Server) detailData(d *dashboard.Detail, advisory, status string) gin.H {
	base := "/countries/" + url.PathEscape(d.Country.Code)
	link := func(city, date, month string) string {
		v := url.Values{}
		if city != "" {
			v.Set("city", city)
		}
		if date != "" {
			v.Set("date", date)
		}
		if month != "" {
			v.Set("month", month)
		}
		if len(v) == 0 {
			return base
		}
		return base + "?" + v.Encode()
	}

	focused, _ := d.City()
	var cities []cityLink
	for i, c := range d.Summary.Cities {
		n := 0
		for _, ds := range c.Dates {
			n += ds.Weight()
		}
		cities = append(cities, cityLink{Name: c.Name, Slots: n, Selected: i == d.CityIndex(), URL: link(c.Name, "", "")})
	}
	var dates []dateLink
	for _, ds := range focused.Dates {
		dates = append(dates, dateLink{
			Date:     ds.Date,
			Count:    ds.Count,
			Selected: ds.Date.Equal(d.Date()),
			URL:      link(focused.Name, model.DateKey(ds.Date), ""),
		})
	}
	dayURL := map[string]string{}
	for _, ds := range focused.Dates {
		dayURL[model.DateKey(ds.Date)] = link(focused.Name, model.DateKey(ds.Date), "")
	}

	selectedKey := ""
	if !d.Date().IsZero() {
		selectedKey = model.DateKey(d.Date())
	}
	return gin.H{
		"Title":        d.Country.Name,
		"Country":      d.Country,
		"Summary":      d.Summary,
		"Advisory":     advisory,
		"Status":       status,
		"Cities":       cities,
		"City":         focused.Name,
		"Dates":        dates,
		"SelectedDate": selectedKey,
		"Month":        d.Month().Format("January 2006"),
		"Weekdays":     dashboard.Weekdays,
		"Weeks":        d.Grid(),
		"DayURL":       dayURL,
		"PrevMonth":    link(focused.Name, selectedKey, d.Month().AddDate(0, -1, 0).Format("2006-01")),
		"NextMonth":    link(focused.Name, selectedKey, d.Month().AddDate(0, 1, 0).Format("2006-01")),
		"BookURL":      base + "/book",
	}
}
