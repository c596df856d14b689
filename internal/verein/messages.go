package verein

// User facing texts. The site is German.
const (
	MsgRequired         = "Bitte füllen Sie dieses Feld aus."
	MsgInvalidEmail     = "Bitte geben Sie eine gültige E-Mail-Adresse ein."
	MsgPasswordTooShort = "Das Passwort muss mindestens 8 Zeichen lang sein."
	MsgPasswordMismatch = "Die Passwörter stimmen nicht überein."
	MsgInvalidDate      = "Bitte geben Sie ein gültiges Datum ein."
	MsgImageType        = "Nur JPG, PNG und WebP Dateien sind erlaubt."
	MsgImageSize        = "Die Datei darf nicht größer als 5MB sein."
	MsgImageRef         = "Bitte geben Sie eine gültige Bild-URL ein."
	MsgInvalidPostID    = "Ungültige Beitrags-ID"
	MsgInvalidChoice    = "Bitte wählen Sie eine der angebotenen Optionen."
	MsgNotApproved      = "Ihr Konto wurde noch nicht freigeschaltet."

	MsgPostNotFound  = "Beitrag nicht gefunden"
	MsgPostLoadError = "Beitrag konnte nicht geladen werden"
	MsgPostsLoad     = "Fehler beim Laden der Beiträge"

	MsgPostCreated     = "Beitrag wurde erstellt."
	MsgPostCreateError = "Fehler beim Erstellen des Beitrags. Bitte versuchen Sie es später erneut."
	MsgPostSaved       = "Beitrag wurde gespeichert."
	MsgPostSaveError   = "Fehler beim Aktualisieren des Beitrags"
	MsgPostDeleted     = "Beitrag wurde gelöscht."
	MsgPostDeleteError = "Fehler beim Löschen des Beitrags"
	MsgImageUploaded   = "Bild wurde hochgeladen."
	MsgImageUploadErr  = "Fehler beim Hochladen des Bildes. Bitte versuchen Sie es erneut."

	MsgContactSent       = "Ihre Nachricht wurde erfolgreich gesendet. Wir melden uns in Kürze bei Ihnen."
	MsgMembershipSent    = "Ihre Anfrage wurde erfolgreich versendet. Sie erhalten in Kürze eine Bestätigung per E-Mail."
	MsgSendError         = "Es ist ein Fehler aufgetreten. Bitte versuchen Sie es später erneut."
	MsgRegistered        = "Ihre Registrierung ist bei uns eingegangen. Wir schalten Sie frei, sobald wir überprüft haben, ob Sie dazu befugt sind."
	MsgRegisterError     = "Registrierung fehlgeschlagen. Bitte versuchen Sie es später erneut."
	MsgLoggedIn          = "Sie sind jetzt angemeldet."
	MsgLoginError        = "Anmeldung fehlgeschlagen. Bitte überprüfen Sie E-Mail-Adresse und Passwort."
	MsgLoggedOut         = "Sie wurden abgemeldet."
	MsgLogoutError       = "Abmeldung fehlgeschlagen."
	MsgRegistrationDone  = "Die Registrierung wurde bearbeitet."
	MsgRegistrationError = "Fehler bei der Bearbeitung der Registrierung"
	MsgRegistrationsLoad = "Fehler beim Laden der Registrierungen"
	MsgMailRelaySent     = "Anfrage erfolgreich versendet"
	MsgMailRelayError    = "Fehler beim Versenden der Anfrage"
)
