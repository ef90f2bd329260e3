// Package transport defines the dashboard statistics bundle.
// JSON keys follow the presentation layer's existing contract.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// SeriesPoint is one bucket of a lead-creation time series.
type SeriesPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// TodayLead is a lead still awaiting contact whose follow-up is due.
type TodayLead struct {
	ID             uuid.UUID  `json:"id"`
	Firma          string     `json:"firma"`
	Telefon        string     `json:"telefon"`
	Sektor         *string    `json:"sektor"`
	Sehir          *string    `json:"sehir"`
	Durum          string     `json:"durum"`
	NextActionDate *time.Time `json:"next_action_date"`
}

// PendingOffer is an open offer enriched with its customer's company name.
type PendingOffer struct {
	ID           uuid.UUID `json:"id"`
	MusteriID    uuid.UUID `json:"musteri_id"`
	Hizmet       string    `json:"hizmet"`
	Tutar        float64   `json:"tutar"`
	ParaBirimi   string    `json:"para_birimi"`
	Durum        string    `json:"durum"`
	CustomerName string    `json:"customer_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// StatusCounts is a fixed-key histogram over lead statuses. Two buckets
// merge historical synonyms ("Teklif Gönderildi" into Teklif, "Satış Oldu"
// into Kazanıldı).
type StatusCounts struct {
	Yeni      int `json:"Yeni"`
	Arandi    int `json:"Arandı"`
	Teklif    int `json:"Teklif"`
	Kazanildi int `json:"Kazanıldı"`
}

// StatsBundle is the complete dashboard payload.
type StatsBundle struct {
	TodayCalls        int            `json:"todayCalls"`
	TodayLeadsToCall  int            `json:"todayLeadsToCall"`
	TodayLeadsList    []TodayLead    `json:"todayLeadsList"`
	NewLeadsLast7Days int            `json:"newLeadsLast7Days"`
	OffersThisMonth   int            `json:"offersThisMonth"`
	WonDealsThisMonth int            `json:"wonDealsThisMonth"`
	PendingOffers     []PendingOffer `json:"pendingOffers"`
	DailyLeads        []SeriesPoint  `json:"dailyLeads"`
	WeeklyLeads       []SeriesPoint  `json:"weeklyLeads"`
	StatusCounts      StatusCounts   `json:"statusCounts"`
	ConversionRate    float64        `json:"conversionRate"`
	TotalLeads        int            `json:"totalLeads"`
	TotalCustomers    int            `json:"totalCustomers"`
	TotalOffers       int            `json:"totalOffers"`
	SentOffers        int            `json:"sentOffers"`
	WonDeals          int            `json:"wonDeals"`
}
