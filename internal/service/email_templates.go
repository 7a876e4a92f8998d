package service

import "fmt"

func fileSharedEmailTemplate(fileName, appName, appURL string) (subject, body string) {
	subject = fmt.Sprintf("A file was shared with you on %s", appName)
	body = fmt.Sprintf(`Hi,

"%s" was shared with you on %s.

Sign in to view it:
%s

If you weren't expecting this, you can ignore this email.

The %s team`, fileName, appName, appURL, appName)
	return subject, body
}
