package types

import "strings"

// Speciality is a fixed medical-domain category a doctor practices in
type Speciality string

const (
	Cardiologist         Speciality = "CARDIOLOGIST"
	Neurologist          Speciality = "NEUROLOGIST"
	Orthopedist          Speciality = "ORTHOPEDIST"
	Pediatrician         Speciality = "PEDIATRICIAN"
	Dermatologist        Speciality = "DERMATOLOGIST"
	Psychiatrist         Speciality = "PSYCHIATRIST"
	Gynecologist         Speciality = "GYNECOLOGIST"
	Oncologist           Speciality = "ONCOLOGIST"
	Urologist            Speciality = "UROLOGIST"
	Gastroenterologist   Speciality = "GASTROENTEROLOGIST"
	ENTSpecialist        Speciality = "ENT_SPECIALIST"
	Radiologist          Speciality = "RADIOLOGIST"
	Pathologist          Speciality = "PATHOLOGIST"
	Anesthesiologist     Speciality = "ANESTHESIOLOGIST"
	Pulmonologist        Speciality = "PULMONOLOGIST"
	Ophthalmologist      Speciality = "OPHTHALMOLOGIST"
	Rheumatologist       Speciality = "RHEUMATOLOGIST"
	Endocrinologist      Speciality = "ENDOCRINOLOGIST"
	Nephrologist         Speciality = "NEPHROLOGIST"
	Hematologist         Speciality = "HEMATOLOGIST"
	Surgeon              Speciality = "SURGEON"
	Immunologist         Speciality = "IMMUNOLOGIST"
	Allergist            Speciality = "ALLERGIST"
	GeneralPhysician     Speciality = "GENERAL_PHYSICIAN"
	PlasticSurgeon       Speciality = "PLASTIC_SURGEON"
	VascularSurgeon      Speciality = "VASCULAR_SURGEON"
	TraumaSurgeon        Speciality = "TRAUMA_SURGEON"
	FamilyMedicine       Speciality = "FAMILY_MEDICINE"
	SportsMedicine       Speciality = "SPORTS_MEDICINE"
	OccupationalMedicine Speciality = "OCCUPATIONAL_MEDICINE"
)

// specialityDisplayNames maps each speciality to its canonical display name.
// The catalog table is seeded from this map, one row per entry.
var specialityDisplayNames = map[Speciality]string{
	Cardiologist:         "Kardiyolog (Kalp ve Damar Hastalıkları Uzmanı)",
	Neurologist:          "Nörolog (Sinir Sistemi Hastalıkları Uzmanı)",
	Orthopedist:          "Ortopedi Uzmanı (Kemik ve Eklem Hastalıkları)",
	Pediatrician:         "Pediatrist (Çocuk Sağlığı ve Hastalıkları Uzmanı)",
	Dermatologist:        "Dermatolog (Cilt Hastalıkları Uzmanı)",
	Psychiatrist:         "Psikiyatrist (Ruh Sağlığı ve Hastalıkları Uzmanı)",
	Gynecologist:         "Jinekolog (Kadın Hastalıkları ve Doğum Uzmanı)",
	Oncologist:           "Onkolog (Kanser Hastalıkları Uzmanı)",
	Urologist:            "Ürolog (Üreme ve İdrar Yolları Hastalıkları Uzmanı)",
	Gastroenterologist:   "Gastroenterolog (Sindirim Sistemi Hastalıkları Uzmanı)",
	ENTSpecialist:        "KBB Uzmanı (Kulak Burun Boğaz Hastalıkları)",
	Radiologist:          "Radyolog (Tıbbi Görüntüleme Uzmanı)",
	Pathologist:          "Patolog (Hastalıkların Mikroskobik İncelemesi)",
	Anesthesiologist:     "Anesteziyolog (Anestezi ve Reanimasyon Uzmanı)",
	Pulmonologist:        "Pulmonolog (Akciğer ve Solunum Hastalıkları Uzmanı)",
	Ophthalmologist:      "Göz Doktoru (Göz Sağlığı ve Hastalıkları Uzmanı)",
	Rheumatologist:       "Romatolog (Romatizmal Hastalıklar Uzmanı)",
	Endocrinologist:      "Endokrinolog (Hormon Hastalıkları Uzmanı)",
	Nephrologist:         "Nefrolog (Böbrek Hastalıkları Uzmanı)",
	Hematologist:         "Hematolog (Kan Hastalıkları Uzmanı)",
	Surgeon:              "Cerrah (Genel Cerrahi Uzmanı)",
	Immunologist:         "İmmünolog (Bağışıklık Sistemi Hastalıkları Uzmanı)",
	Allergist:            "Alerji Uzmanı",
	GeneralPhysician:     "Pratisyen Hekim (Genel Sağlık Hizmetleri)",
	PlasticSurgeon:       "Plastik Cerrah (Estetik ve Rekonstrüktif Cerrahi)",
	VascularSurgeon:      "Damar Cerrahı",
	TraumaSurgeon:        "Travma Cerrahı",
	FamilyMedicine:       "Aile Hekimi",
	SportsMedicine:       "Spor Hekimi",
	OccupationalMedicine: "İşyeri Hekimi (Meslek Hastalıkları Uzmanı)",
}

// specialityOrder fixes the seeding order so catalog ids are stable
var specialityOrder = []Speciality{
	Cardiologist, Neurologist, Orthopedist, Pediatrician, Dermatologist,
	Psychiatrist, Gynecologist, Oncologist, Urologist, Gastroenterologist,
	ENTSpecialist, Radiologist, Pathologist, Anesthesiologist, Pulmonologist,
	Ophthalmologist, Rheumatologist, Endocrinologist, Nephrologist,
	Hematologist, Surgeon, Immunologist, Allergist, GeneralPhysician,
	PlasticSurgeon, VascularSurgeon, TraumaSurgeon, FamilyMedicine,
	SportsMedicine, OccupationalMedicine,
}

// AllSpecialities returns every speciality in seeding order
func AllSpecialities() []Speciality {
	out := make([]Speciality, len(specialityOrder))
	copy(out, specialityOrder)
	return out
}

// DisplayName returns the canonical human-readable name of s
func (s Speciality) DisplayName() string {
	return specialityDisplayNames[s]
}

// Valid reports whether s is a known speciality
func (s Speciality) Valid() bool {
	_, ok := specialityDisplayNames[s]
	return ok
}

// SpecialityByDisplayName resolves a display name to its speciality.
// Matching is case-insensitive but otherwise exact.
func SpecialityByDisplayName(displayName string) (Speciality, bool) {
	trimmed := strings.TrimSpace(displayName)
	for _, s := range specialityOrder {
		if strings.EqualFold(specialityDisplayNames[s], trimmed) {
			return s, true
		}
	}
	return "", false
}

// SpecialityRow is a persisted catalog entry
type SpecialityRow struct {
	ID          int64      `json:"id" db:"id"`
	Code        Speciality `json:"code" db:"code"`
	DisplayName string     `json:"display_name" db:"display_name"`
}

// SpecialityResponse is the catalog list view
type SpecialityResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
