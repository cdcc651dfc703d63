package model

// Category is one of the fixed classification tags for a contract.
// The tag set mirrors the original catalog; free-form detail goes into
// Contract.Subcategory instead of new tags.
type Category string

// CategoryCustom is the fallback tag for anything outside the catalog.
const CategoryCustom Category = "custom"

// Categories lists every known classification tag, grouped by domain.
var Categories = []Category{
	// Telekommunikation
	"mobilfunk", "festnetz", "internet", "kombi-tarif",
	// Versicherungen
	"krankenversicherung", "haftpflicht", "hausrat", "kfz-versicherung",
	"rechtsschutz", "berufsunfaehigkeit", "lebensversicherung", "zahnzusatz",
	"unfallversicherung", "tierversicherung",
	// Energie & Versorgung
	"strom", "gas", "fernwaerme", "wasser",
	// Wohnen
	"miete", "nebenkosten", "hausmeister", "parkplatz",
	// Medien & Abonnements
	"streaming-video", "streaming-musik", "streaming-gaming",
	"zeitschrift", "zeitung", "hoerbuch",
	// Software & Cloud
	"software-abo", "cloud-speicher", "domain-hosting",
	// Fitness & Gesundheit
	"fitnessstudio", "yoga-studio", "schwimmbad", "physiotherapie",
	// Mobilität
	"bahncard", "oepnv-abo", "carsharing", "kfz-leasing", "fahrrad-leasing",
	"parkhaus-abo", "tankstelle-karte",
	// Finanzprodukte
	"girokonto", "kreditkarte", "depot", "bausparvertrag", "kredit",
	// Öffentliche Beiträge
	"rundfunkbeitrag", "muellabfuhr", "schornsteinfeger",
	// Mitgliedschaften
	"verein", "gewerkschaft", "automobilclub", "berufsverband",
	// Sonstiges
	"telematik", "security-dienst", "reinigung", "lieferservice-abo",
	CategoryCustom,
}

var categorySet = func() map[Category]struct{} {
	m := make(map[Category]struct{}, len(Categories))
	for _, c := range Categories {
		m[c] = struct{}{}
	}
	return m
}()

// IsValid reports whether c is part of the catalog.
func (c Category) IsValid() bool {
	_, ok := categorySet[c]
	return ok
}
