package scraper

import (
	"bytes"
	"context"
	"fmt"
	"juniorguru-sync/internal/components/chrono"
	"juniorguru-sync/internal/components/telemetry"
	"juniorguru-sync/internal/htmlutil"
	"net/url"
	"slices"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const (
	report_jobscz_listing = "jobscz.listing"
	report_jobscz_detail  = "jobscz.detail"
	report_jobscz_portal  = "jobscz.custom-portal"
	report_jobscz_card    = "jobscz.card"
)

const (
	Source       = "jobscz"
	jobsCzDomain = "www.jobs.cz"
)

var (
	trackingParams = []string{"positionOfAdInAgentEmail", "searchId", "rps"}
	logoParams     = []string{"width"}
)

// Job is a listing scraped from jobs.cz.
type Job struct {
	URL                 string
	Title               string
	CompanyName         string
	CompanyLogoURLs     []string
	Locations           []string
	SourceURLs          []string
	DescriptionMarkdown string
	FirstSeenOn         time.Time
}

// card is a search result waiting for its detail page.
type card struct {
	job        Job
	detailLink *url.URL
}

// JobsCz crawls the jobs.cz search results and their detail pages.
type JobsCz struct {
	// detailHost is the only host whose detail pages are scraped.
	detailHost string
	http       *resty.Client
	tel        telemetry.API
	time       chrono.TimeAPI
	converter  *md.Converter
}

func NewJobsCz(opts ClientOptions, tel telemetry.API, timeAPI chrono.TimeAPI) JobsCz {
	tel = telemetry.NewScopedAPI("scraper", tel)
	return JobsCz{
		detailHost: jobsCzDomain,
		http:       newClient(opts, tel),
		tel:        tel,
		time:       timeAPI,
		converter:  md.NewConverter(jobsCzDomain, true, nil),
	}
}

func uniqueNonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// parseListing extracts the result cards of a search results page.
func parseListing(doc *goquery.Document, pageUrl *url.URL, today time.Time, tel telemetry.API) []card {
	var cards []card
	doc.Find("article[class*=SearchResultCard]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Find(`a[data-link="jd-detail"]`).First().Attr("href")
		if !ok {
			tel.ReportWarning(report_jobscz_card, "card without a detail link", pageUrl.String())
			return
		}
		link, err := htmlutil.Resolve(pageUrl, href)
		if err != nil {
			tel.ReportWarning(report_jobscz_card, err, href)
			return
		}

		var logos []string
		sel.Find(".CompanyLogo img").Each(func(_ int, img *goquery.Selection) {
			src := strings.TrimSpace(img.AttrOr("src", ""))
			if src != "" {
				logos = append(logos, htmlutil.StripParams(src, logoParams...))
			}
		})

		var locations []string
		for _, text := range htmlutil.OwnText(sel.Find(".SearchResultCard__footerItem:nth-child(2)")) {
			locations = append(locations, htmlutil.CleanText(text))
		}

		cards = append(cards, card{
			job: Job{
				Title:           htmlutil.Text(sel.Find("h2 a")),
				CompanyName:     htmlutil.Text(sel.Find(".SearchResultCard__footerItem:nth-child(1) span")),
				CompanyLogoURLs: uniqueNonEmpty(logos),
				Locations:       uniqueNonEmpty(locations),
				SourceURLs:      []string{pageUrl.String()},
				FirstSeenOn:     today,
			},
			detailLink: link,
		})
	})
	return cards
}

// parseDetail completes a job with what its detail page says.
func parseDetail(doc *goquery.Document, pageUrl *url.URL, job Job, converter *md.Converter) (Job, error) {
	job.URL = htmlutil.StripParams(pageUrl.String(), trackingParams...)
	job.SourceURLs = append(slices.Clone(job.SourceURLs), pageUrl.String())

	description, err := doc.Find(".content-rich-text").First().Html()
	if err != nil {
		return Job{}, fmt.Errorf("serialize description: %w", err)
	}
	if strings.TrimSpace(description) != "" {
		markdown, err := converter.ConvertString(description)
		if err != nil {
			return Job{}, fmt.Errorf("convert description: %w", err)
		}
		job.DescriptionMarkdown = strings.TrimSpace(markdown)
	}
	return job, nil
}

func (s JobsCz) fetch(ctx context.Context, rawUrl string) (*goquery.Document, *url.URL, error) {
	res, err := s.http.R().
		SetContext(ctx).
		Get(rawUrl)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch: %w", err)
	}
	if res.IsError() {
		return nil, nil, fmt.Errorf("fetch: unexpected status %s", res.Status())
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, nil, fmt.Errorf("parse: %w", err)
	}
	// the final url after redirects
	return doc, res.RawResponse.Request.URL, nil
}

// Crawl scrapes one search results page and every detail page it links to.
// Detail pages hosted outside of jobs.cz are skipped, so are the ones that fail
// to load, only a broken listing page fails the crawl.
func (s JobsCz) Crawl(ctx context.Context, listingUrl string) ([]Job, error) {
	doc, pageUrl, err := s.fetch(ctx, listingUrl)
	if err != nil {
		s.tel.ReportBroken(report_jobscz_listing, err, listingUrl)
		return nil, err
	}
	today := chrono.Date(s.time.Now())
	cards := parseListing(doc, pageUrl, today, s.tel)
	s.tel.ReportDebug("listing parsed", listingUrl, len(cards))

	var jobs []Job
	for _, c := range cards {
		detail, detailUrl, err := s.fetch(ctx, c.detailLink.String())
		if err != nil {
			s.tel.ReportBroken(report_jobscz_detail, err, c.detailLink.String())
			continue
		}
		if detailUrl.Host != s.detailHost {
			s.tel.ReportWarning(report_jobscz_portal, "custom job portals are not supported", detailUrl.String())
			continue
		}
		job, err := parseDetail(detail, detailUrl, c.job, s.converter)
		if err != nil {
			s.tel.ReportBroken(report_jobscz_detail, err, detailUrl.String())
			continue
		}
		jobs = append(jobs, job)
	}
	s.tel.ReportCount("jobscz.jobs", int64(len(jobs)))
	return jobs, nil
}
