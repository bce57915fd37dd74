package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// SaleStatus represents the administrative lifecycle state of a sale
type SaleStatus string

const (
	SaleStatusAwaitingFdr     SaleStatus = "awaiting_fdr"
	SaleStatusIncompleteFile  SaleStatus = "incomplete_file"
	SaleStatusToReview        SaleStatus = "to_review"
	SaleStatusAwaitingInstall SaleStatus = "awaiting_install"
	SaleStatusAwaitingPayment SaleStatus = "awaiting_payment"
	SaleStatusCashed          SaleStatus = "cashed"
	SaleStatusCancelled       SaleStatus = "cancelled"
	SaleStatusUnpaid          SaleStatus = "unpaid"
	SaleStatusBlacklisted     SaleStatus = "blacklisted"
	SaleStatusOther           SaleStatus = "other"
)

// AppointmentStatus represents the outcome of a prospect appointment
type AppointmentStatus string

const (
	AppointmentStatusUpcoming          AppointmentStatus = "upcoming"
	AppointmentStatusNoShowOrRefused   AppointmentStatus = "no_show_or_refused"
	AppointmentStatusPostponed         AppointmentStatus = "postponed"
	AppointmentStatusNotFollowedUp     AppointmentStatus = "not_followed_up"
	AppointmentStatusConvertedToSale   AppointmentStatus = "converted_to_sale"
	AppointmentStatusOutOfTarget       AppointmentStatus = "out_of_target"
	AppointmentStatusPartial           AppointmentStatus = "partial"
	AppointmentStatusToReplace         AppointmentStatus = "to_replace"
	AppointmentStatusOutOfArea         AppointmentStatus = "out_of_area"
	AppointmentStatusInMeeting         AppointmentStatus = "in_meeting"
	AppointmentStatusReferredElsewhere AppointmentStatus = "referred_elsewhere"
)

// Historical rows carry the labels shown in the back office.
var saleStatusLabels = map[string]SaleStatus{
	"en attente fdr":      SaleStatusAwaitingFdr,
	"dossier incomplet":   SaleStatusIncompleteFile,
	"vente a revoir":      SaleStatusToReview,
	"en attente pose":     SaleStatusAwaitingInstall,
	"en attente paiement": SaleStatusAwaitingPayment,
	"encaissée":           SaleStatusCashed,
	"annulée":             SaleStatusCancelled,
	"impayé":              SaleStatusUnpaid,
	"black list":          SaleStatusBlacklisted,
	"autre":               SaleStatusOther,
}

var appointmentStatusLabels = map[string]AppointmentStatus{
	"a venir":              AppointmentStatusUpcoming,
	"abs/nrp":              AppointmentStatusNoShowOrRefused,
	"rdc":                  AppointmentStatusPostponed,
	"entrée sans suite":    AppointmentStatusNotFollowedUp,
	"vente":                AppointmentStatusConvertedToSale,
	"hors cible":           AppointmentStatusOutOfTarget,
	"partiel":              AppointmentStatusPartial,
	"a replacer":           AppointmentStatusToReplace,
	"hors secteur":         AppointmentStatusOutOfArea,
	"en rdv":               AppointmentStatusInMeeting,
	"ref autre société":    AppointmentStatusReferredElsewhere,
}

var knownSaleStatuses = map[SaleStatus]bool{
	SaleStatusAwaitingFdr: true, SaleStatusIncompleteFile: true, SaleStatusToReview: true,
	SaleStatusAwaitingInstall: true, SaleStatusAwaitingPayment: true, SaleStatusCashed: true,
	SaleStatusCancelled: true, SaleStatusUnpaid: true, SaleStatusBlacklisted: true, SaleStatusOther: true,
}

var knownAppointmentStatuses = map[AppointmentStatus]bool{
	AppointmentStatusUpcoming: true, AppointmentStatusNoShowOrRefused: true, AppointmentStatusPostponed: true,
	AppointmentStatusNotFollowedUp: true, AppointmentStatusConvertedToSale: true, AppointmentStatusOutOfTarget: true,
	AppointmentStatusPartial: true, AppointmentStatusToReplace: true, AppointmentStatusOutOfArea: true,
	AppointmentStatusInMeeting: true, AppointmentStatusReferredElsewhere: true,
}

func foldKey(raw string) string {
	return cases.Fold().String(strings.Join(strings.Fields(raw), " "))
}

// NormalizeSaleStatus maps a stored status, canonical code or historical label,
// onto the canonical enum. Unknown values become SaleStatusOther.
func NormalizeSaleStatus(raw string) SaleStatus {
	key := foldKey(raw)
	if s := SaleStatus(key); knownSaleStatuses[s] {
		return s
	}
	if s, ok := saleStatusLabels[key]; ok {
		return s
	}
	return SaleStatusOther
}

// NormalizeAppointmentStatus maps a stored status onto the canonical enum.
// The second return value is false when the value is not recognised.
func NormalizeAppointmentStatus(raw string) (AppointmentStatus, bool) {
	key := foldKey(raw)
	if s := AppointmentStatus(key); knownAppointmentStatuses[s] {
		return s, true
	}
	s, ok := appointmentStatusLabels[key]
	return s, ok
}
