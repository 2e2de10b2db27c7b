package mail

type LeadInfoEmailData struct {
	LeadName  string
	MyCompany string
}
