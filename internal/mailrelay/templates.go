package mailrelay

import "html/template"

var (
	membershipNotification = template.Must(template.New("membership-notification").Parse(`
<h2>Neue Mitgliedsanfrage von {{.Name}}</h2>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Telefon:</strong> {{.Phone}}</p>
<p><strong>Adresse:</strong> {{.Address}}</p>
<p><strong>Geburtsdatum:</strong> {{.Birthdate}}</p>
{{- with .MembershipType}}
<p><strong>Mitgliedschaft:</strong> {{if eq . "family"}}Familie{{else}}Einzelperson{{end}}</p>
{{- end}}
{{- with .ApplicantType}}
<p><strong>Antrag für:</strong> {{if eq . "other"}}eine andere Person{{else}}sich selbst{{end}}</p>
{{- end}}
<p><strong>Nachricht:</strong> {{.Message}}</p>
`))

	membershipConfirmation = template.Must(template.New("membership-confirmation").Parse(`
<h2>Vielen Dank für Ihre Anfrage, {{.Name}}!</h2>
<p>Wir haben Ihre Mitgliedsanfrage erhalten und werden sie schnellstmöglich bearbeiten.</p>
<p>Sie hören in Kürze von uns.</p>
<br>
<p>Mit freundlichen Grüßen</p>
<p>Ihr {{.Signature}}</p>
`))

	contactNotification = template.Must(template.New("contact-notification").Parse(`
<h2>Neue Kontaktanfrage von {{.Name}}</h2>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Betreff:</strong> {{.Subject}}</p>
<p><strong>Nachricht:</strong> {{.Message}}</p>
`))

	contactConfirmation = template.Must(template.New("contact-confirmation").Parse(`
<h2>Vielen Dank für Ihre Nachricht, {{.Name}}!</h2>
<p>Wir haben Ihre Nachricht zum Thema „{{.Subject}}“ erhalten und melden uns in Kürze bei Ihnen.</p>
<br>
<p>Mit freundlichen Grüßen</p>
<p>Ihr {{.Signature}}</p>
`))
)

type confirmationData struct {
	Name      string
	Subject   string
	Signature string
}
