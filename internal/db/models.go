package db

import "database/sql"

type ClubUser struct {
	ID             int64
	DisplayName    string
	IsMember       bool
	IsBot          bool
	FirstSeenOn    string
	SubscriptionID sql.NullString
	ExpiresAt      sql.NullInt64
	CouponBase     sql.NullString
	JoinedAt       sql.NullInt64
}

type Company struct {
	ID                int64
	Name              string
	Slug              string
	CouponBase        sql.NullString
	StudentCouponBase sql.NullString
	ExpiresOn         sql.NullString
}

type SubscribedPeriod struct {
	ID              int64
	StartOn         string
	EndOn           string
	CouponBase      sql.NullString
	HasFeminineName bool
}

type CompanyStudentSubscription struct {
	ID          int64
	CompanyID   int64
	MemberfulID string
	Name        string
	Email       string
	StartedOn   string
	InvoicedOn  sql.NullString
}

type Wisdom struct {
	ID   int64
	Name string
	Text string
}

type Event struct {
	ID           int64
	Title        string
	Url          string
	StartAt      int64
	BioName      string
	AvatarPath   string
	RecordingUrl sql.NullString
}

type ScrapedJob struct {
	Url                 string
	Source              string
	Title               string
	CompanyName         string
	CompanyLogoUrls     string
	LocationsRaw        string
	SourceUrls          string
	DescriptionMarkdown string
	FirstSeenOn         string
	LastSeenOn          string
}
