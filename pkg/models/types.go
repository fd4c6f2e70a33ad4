package models

import (
	"time"
)

/*
LOAD → agrégats bruts fournis par la base ou par le backend.
*/

// Noms des étapes du tunnel de conversion.
const (
	StepProductViewed = "product_viewed"
	StepAddedToCart   = "product_added_to_cart"
	StepCheckout      = "checkout_started"
	StepOrderComplete = "order_completed"
)

// FunnelOrder est l'ordre statique des étapes du tunnel (indépendant de l'ordre d'insertion).
var FunnelOrder = []string{StepProductViewed, StepAddedToCart, StepCheckout, StepOrderComplete}

// Statuts de commande considérés comme honorés.
const (
	StatusCompleted = "completed"
	StatusDelivered = "delivered"
)

// ConversionStep représente une étape du tunnel : nombre de sessions et taux de conversion (0-100).
type ConversionStep struct {
	Count          int64   `json:"count" yaml:"count"`
	ConversionRate float64 `json:"conversionRate" yaml:"conversionRate"`
}

// FunnelSteps associe un nom d'étape à son enregistrement.
type FunnelSteps map[string]ConversionStep

// RevenueAggregate contient le chiffre d'affaires agrégé d'une période.
type RevenueAggregate struct {
	TotalRevenue      float64 `json:"totalRevenue" yaml:"totalRevenue"`
	TotalOrders       int64   `json:"totalOrders" yaml:"totalOrders"`
	AverageOrderValue float64 `json:"averageOrderValue" yaml:"averageOrderValue"`
}

// OrderStatusBucket est le nombre de commandes pour un statut donné.
type OrderStatusBucket struct {
	Status string `json:"status" yaml:"status"`
	Count  int64  `json:"count" yaml:"count"`
}

// CustomerBehavior regroupe les indicateurs de fidélité clients.
type CustomerBehavior struct {
	RetentionRate         float64 `json:"retentionRate" yaml:"retentionRate"`                 // 0-100
	RepeatPurchaseRate    float64 `json:"repeatPurchaseRate" yaml:"repeatPurchaseRate"`       // 0-1
	AverageOrderFrequency float64 `json:"averageOrderFrequency" yaml:"averageOrderFrequency"` // commandes par client
}

// ProductSales est une ligne du classement des produits.
type ProductSales struct {
	ProductID string  `json:"_id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Count     int64   `json:"count" yaml:"count"`
	Revenue   float64 `json:"revenue" yaml:"revenue"`
}

// Aggregates est l'ensemble des agrégats d'une période, tels que chargés.
type Aggregates struct {
	Revenue           RevenueAggregate
	PreviousRevenue   RevenueAggregate
	StatusBuckets     []OrderStatusBucket
	Funnel            FunnelSteps
	Customers         CustomerBehavior
	TopProducts       []ProductSales
	HistoricalRevenue float64
}

/*
PERIOD → libellés de période et nombre de jours associés.
*/

// Period est un libellé de période sélectionnable dans le dashboard.
type Period string

const (
	Period7Days  Period = "7days"
	Period30Days Period = "30days"
	Period90Days Period = "90days"
	Period1Year  Period = "1year"
)

// DefaultPeriodDays est utilisé pour tout libellé inconnu.
const DefaultPeriodDays = 30

// PeriodDays est la table statique libellé → jours.
var PeriodDays = map[Period]int{
	Period7Days:  7,
	Period30Days: 30,
	Period90Days: 90,
	Period1Year:  365,
}

/*
COMPUTE → résultats dérivés affichés dans le dashboard.
*/

// Goals contient les objectifs de chiffre d'affaires (entiers, unité monétaire agnostique).
type Goals struct {
	Daily   int64 `json:"daily" yaml:"daily"`
	Weekly  int64 `json:"weekly" yaml:"weekly"`
	Monthly int64 `json:"monthly" yaml:"monthly"`
}

// DashboardReport contient toutes les métriques calculées pour une période.
type DashboardReport struct {
	Period               Period           `json:"period" yaml:"period"`
	Days                 int              `json:"days" yaml:"days"`
	From                 time.Time        `json:"from" yaml:"from"`
	To                   time.Time        `json:"to" yaml:"to"`
	Revenue              RevenueAggregate `json:"revenue" yaml:"revenue"`
	RevenueGrowth        float64          `json:"revenueGrowth" yaml:"revenueGrowth"`
	DailyRevenue         float64          `json:"dailyRevenue" yaml:"dailyRevenue"`
	WeeklyRevenue        float64          `json:"weeklyRevenue" yaml:"weeklyRevenue"`
	MonthlyRevenue       float64          `json:"monthlyRevenue" yaml:"monthlyRevenue"`
	OrdersPerWeek        float64          `json:"ordersPerWeek" yaml:"ordersPerWeek"`
	FulfillmentRate      float64          `json:"fulfillmentRate" yaml:"fulfillmentRate"`
	PendingOrders        int64            `json:"pendingOrders" yaml:"pendingOrders"`
	CancelledOrders      int64            `json:"cancelledOrders" yaml:"cancelledOrders"`
	FunnelEfficiency     float64          `json:"funnelEfficiency" yaml:"funnelEfficiency"`
	ImprovementPotential float64          `json:"improvementPotential" yaml:"improvementPotential"`
	CustomerHealthScore  int              `json:"customerHealthScore" yaml:"customerHealthScore"`
	CustomerSegment      string           `json:"customerSegment" yaml:"customerSegment"`
	TopProduct           string           `json:"topProduct,omitempty" yaml:"topProduct,omitempty"`
	Goals                Goals            `json:"goals" yaml:"goals"`
	DailyGoalProgress    float64          `json:"dailyGoalProgress" yaml:"dailyGoalProgress"`
	MonthlyGoalProgress  float64          `json:"monthlyGoalProgress" yaml:"monthlyGoalProgress"`
}

/*
CONFIG → paramètres passés au calcul.
*/

// Config contient les paramètres de configuration passés à la fonction de calcul.
type Config struct {
	Periods     []Period  // périodes à calculer, dans l'ordre
	Observation time.Time // borne haute exclusive (UTC)
	Verbose     bool      // logs détaillés + barre de progression
}

/*
TRACK → événement du storefront enregistré pour alimenter le tunnel.
*/

// StorefrontEvent est un événement de navigation ou d'achat.
type StorefrontEvent struct {
	ID         string
	SessionID  string
	UserID     string
	Type       string
	Properties string // JSON brut
	OccurredAt time.Time
}
