package posting

import (
	"time"
)

type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeInternship JobType = "Internship"
)

var jobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship}

// JobTypes returns the closed set of accepted job types in display order.
func JobTypes() []JobType {
	out := make([]JobType, len(jobTypes))
	copy(out, jobTypes)
	return out
}

func (t JobType) Valid() bool {
	for _, v := range jobTypes {
		if t == v {
			return true
		}
	}
	return false
}

func (t JobType) String() string {
	return string(t)
}

// ParseJobType matches s exactly against the enum; no case folding.
func ParseJobType(s string) (JobType, bool) {
	t := JobType(s)
	return t, t.Valid()
}

// JobPosting is the only stored entity. Rows are written once and never updated.
type JobPosting struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	JobTitle            string    `gorm:"column:job_title;type:text;not null" json:"jobTitle"`
	CompanyName         string    `gorm:"column:company_name;type:text;not null" json:"companyName"`
	Location            string    `gorm:"column:location;type:text;not null" json:"location"`
	JobType             JobType   `gorm:"column:job_type;type:text;not null" json:"jobType"`
	SalaryRange         string    `gorm:"column:salary_range;type:text;not null" json:"salaryRange"`
	JobDescription      string    `gorm:"column:job_description;type:text;not null" json:"jobDescription"`
	Requirements        string    `gorm:"column:requirements;type:text;not null" json:"requirements"`
	Responsibilities    string    `gorm:"column:responsibilities;type:text;not null" json:"responsibilities"`
	ApplicationDeadline Date      `gorm:"column:application_deadline;type:date;not null" json:"applicationDeadline"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (JobPosting) TableName() string {
	return "job_postings"
}
