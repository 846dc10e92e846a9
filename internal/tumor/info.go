package tumor

// Info is the static medical reference record for a label. Positive classes
// populate Types through Prevalence; NoTumor populates NormalFindings,
// Recommendations and Note instead.
type Info struct {
	Description     string
	Types           []string
	Symptoms        []string
	Treatments      []string
	Prognosis       string
	Prevalence      string
	NormalFindings  []string
	Recommendations []string
	Note            string
}

// Info returns the reference record for the label. The switch is exhaustive
// over the enum, so every label the classifier can emit has an entry.
func (l Label) Info() Info {
	switch l {
	case Glioma:
		return Info{
			Description: "Gliomas are tumors that arise from glial cells in the brain and spinal cord. They are the most common type of primary brain tumor in adults.",
			Types: []string{
				"Astrocytoma (Grade I-IV)",
				"Oligodendroglioma",
				"Ependymoma",
				"Mixed glioma",
			},
			Symptoms: []string{
				"Headaches that gradually worsen",
				"Seizures (especially in adults with no prior history)",
				"Personality or memory changes",
				"Nausea and vomiting",
				"Weakness or paralysis in parts of the body",
				"Vision or speech problems",
			},
			Treatments: []string{
				"Surgical resection",
				"Radiation therapy",
				"Chemotherapy",
				"Targeted therapy",
				"Clinical trials",
			},
			Prognosis:  "Varies significantly based on grade, location, and molecular characteristics. Grade I gliomas have better prognosis than Grade IV (Glioblastoma).",
			Prevalence: "Approximately 3-5 cases per 100,000 people annually",
		}
	case Meningioma:
		return Info{
			Description: "Meningiomas are tumors that arise from the meninges, the protective layers surrounding the brain and spinal cord. Most are benign (non-cancerous).",
			Types: []string{
				"Grade I (Benign) - 90% of cases",
				"Grade II (Atypical) - 7-8% of cases",
				"Grade III (Malignant) - 1-3% of cases",
			},
			Symptoms: []string{
				"Headaches",
				"Vision problems",
				"Hearing loss or ringing in ears",
				"Memory loss",
				"Weakness in arms or legs",
				"Seizures",
				"Changes in smell",
			},
			Treatments: []string{
				"Observation (for small, asymptomatic tumors)",
				"Surgical removal",
				"Stereotactic radiosurgery",
				"Conventional radiation therapy",
				"Hormone therapy (in some cases)",
			},
			Prognosis:  "Generally excellent for Grade I meningiomas. 5-year survival rate is over 95% for benign meningiomas.",
			Prevalence: "Most common primary brain tumor, representing about 36% of all brain tumors",
		}
	case Pituitary:
		return Info{
			Description: "Pituitary tumors are growths in the pituitary gland, a small organ that controls several other hormone-producing glands. Most are benign adenomas.",
			Types: []string{
				"Functional adenomas (hormone-producing)",
				"Non-functional adenomas",
				"Microadenomas (<10mm)",
				"Macroadenomas (>10mm)",
				"Craniopharyngioma",
				"Rathke's cleft cyst",
			},
			Symptoms: []string{
				"Vision problems (peripheral vision loss)",
				"Hormonal imbalances",
				"Headaches",
				"Unexplained fatigue",
				"Mood changes or depression",
				"Changes in menstrual periods",
				"Erectile dysfunction",
				"Growth abnormalities",
			},
			Treatments: []string{
				"Transsphenoidal surgery",
				"Medication (dopamine agonists, somatostatin analogs)",
				"Radiation therapy",
				"Stereotactic radiosurgery",
				"Hormone replacement therapy",
			},
			Prognosis:  "Generally excellent with appropriate treatment. Most pituitary adenomas are curable.",
			Prevalence: "About 15% of all brain tumors. Affects approximately 1 in 1,000 people",
		}
	case NoTumor:
		return Info{
			Description: "No tumor detected in the MRI scan. The brain tissue appears normal based on AI analysis.",
			NormalFindings: []string{
				"Healthy brain tissue structure",
				"Normal ventricle size and shape",
				"No abnormal masses or lesions",
				"Appropriate gray and white matter contrast",
				"Normal cerebrospinal fluid spaces",
			},
			Recommendations: []string{
				"Continue routine medical check-ups",
				"Maintain healthy lifestyle",
				"Monitor for any new symptoms",
				"Follow up with healthcare provider as scheduled",
			},
			Note: "While no tumor is detected, this AI analysis should be confirmed by a qualified radiologist and medical professional.",
		}
	}
	return Info{}
}
