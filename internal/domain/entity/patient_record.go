package entity

// PatientRecord is the single persisted obstetric record.
// CreatedAt and UpdatedAt are epoch milliseconds supplied by the caller; gorm must not touch them.
type PatientRecord struct {
	ID              string      `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name            string      `gorm:"type:varchar(255);not null" json:"name"`
	Age             int         `gorm:"not null;default:0" json:"age"`
	G               int         `gorm:"column:g;not null;default:0" json:"g"`
	P               int         `gorm:"column:p;not null;default:0" json:"p"`
	EGA             string      `gorm:"column:ega;type:varchar(64)" json:"ega"`
	EDD             string      `gorm:"column:edd;type:varchar(10)" json:"edd"`
	BeingManagedFor string      `gorm:"type:text" json:"beingManagedFor"`
	Complaints      string      `gorm:"type:text" json:"complaints"`
	Updates         string      `gorm:"type:text" json:"updates"`
	ODQ             ODQ         `gorm:"embedded;embeddedPrefix:odq_" json:"odq"`
	SystemicEnquiry string      `gorm:"type:text" json:"systemicEnquiry"`
	Examination     Examination `gorm:"embedded;embeddedPrefix:exam_" json:"examination"`
	Investigations  string      `gorm:"type:text" json:"investigations"`
	Impression      string      `gorm:"type:text" json:"impression"`
	Plan            string      `gorm:"type:text" json:"plan"`
	CreatedAt       int64       `gorm:"not null;index:idx_patients_created_at;autoCreateTime:false" json:"createdAt"`
	UpdatedAt       int64       `gorm:"not null;autoUpdateTime:false" json:"updatedAt"`
}

func (PatientRecord) TableName() string {
	return "patients"
}

// ODQ is the "on direct questioning" checklist. Every flag is always present.
type ODQ struct {
	FetalMovements     bool `gorm:"not null;default:false" json:"fetalMovements"`
	LossOfLiquor       bool `gorm:"not null;default:false" json:"lossOfLiquor"`
	LowerAbdominalPain bool `gorm:"not null;default:false" json:"lowerAbdominalPain"`
	BleedingPerVaginum bool `gorm:"not null;default:false" json:"bleedingPerVaginum"`
	Fever              bool `gorm:"not null;default:false" json:"fever"`
	Nausea             bool `gorm:"not null;default:false" json:"nausea"`
	Vomiting           bool `gorm:"not null;default:false" json:"vomiting"`
	Dysuria            bool `gorm:"not null;default:false" json:"dysuria"`
	Frequency          bool `gorm:"not null;default:false" json:"frequency"`
	Chills             bool `gorm:"not null;default:false" json:"chills"`
	Headache           bool `gorm:"not null;default:false" json:"headache"`
	BlurredVision      bool `gorm:"not null;default:false" json:"blurredVision"`
	Dizziness          bool `gorm:"not null;default:false" json:"dizziness"`
	EasyFatiguability  bool `gorm:"not null;default:false" json:"easyFatiguability"`
	ChestPain          bool `gorm:"not null;default:false" json:"chestPain"`
	Palpitations       bool `gorm:"not null;default:false" json:"palpitations"`
	BipedalSwelling    bool `gorm:"not null;default:false" json:"bipedalSwelling"`
}

// ODQKeys lists the checklist keys in display order.
var ODQKeys = []string{
	"fetalMovements",
	"lossOfLiquor",
	"lowerAbdominalPain",
	"bleedingPerVaginum",
	"fever",
	"nausea",
	"vomiting",
	"dysuria",
	"frequency",
	"chills",
	"headache",
	"blurredVision",
	"dizziness",
	"easyFatiguability",
	"chestPain",
	"palpitations",
	"bipedalSwelling",
}

// ODQEntry is one checklist flag with its key.
type ODQEntry struct {
	Key   string
	Value bool
}

// Entries returns the flags in the order of ODQKeys.
func (o ODQ) Entries() []ODQEntry {
	values := []bool{
		o.FetalMovements,
		o.LossOfLiquor,
		o.LowerAbdominalPain,
		o.BleedingPerVaginum,
		o.Fever,
		o.Nausea,
		o.Vomiting,
		o.Dysuria,
		o.Frequency,
		o.Chills,
		o.Headache,
		o.BlurredVision,
		o.Dizziness,
		o.EasyFatiguability,
		o.ChestPain,
		o.Palpitations,
		o.BipedalSwelling,
	}

	entries := make([]ODQEntry, len(ODQKeys))
	for i, key := range ODQKeys {
		entries[i] = ODQEntry{Key: key, Value: values[i]}
	}
	return entries
}

// Examination holds the on-examination findings.
type Examination struct {
	General    string     `gorm:"type:text" json:"general"`
	VitalSigns VitalSigns `gorm:"embedded;embeddedPrefix:vital_" json:"vitalSigns"`
	CVS        string     `gorm:"column:cvs;type:text" json:"cvs"`
	RS         string     `gorm:"column:rs;type:text" json:"rs"`
	ABD        string     `gorm:"column:abd;type:text" json:"abd"`
	Uterus     string     `gorm:"type:text" json:"uterus"`
	CNS        string     `gorm:"column:cns;type:text" json:"cns"`
}

type VitalSigns struct {
	BP string `gorm:"column:bp;type:varchar(16)" json:"bp"`
}

// Category labels derived from EGA. Never stored.
const (
	CategoryLabelPregnant   = "Pregnant"
	CategoryLabelPostPartum = "Post Partum"
)

// IsPregnant reports whether a gestational age is recorded.
func (p *PatientRecord) IsPregnant() bool {
	return p.EGA != ""
}

// CategoryLabel returns "Pregnant" or "Post Partum".
func (p *PatientRecord) CategoryLabel() string {
	if p.IsPregnant() {
		return CategoryLabelPregnant
	}
	return CategoryLabelPostPartum
}
