package service

import "fmt"

func welcomeEmailTemplate(username, appURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi %s,

Your account is ready and your portfolio has been created.

Add a few works, pick a template and publish your site: %s

Best,
The %s Team`, username, appURL, appName)

	return subject, body
}

func siteGeneratedEmailTemplate(username, siteURL, appName string) (string, string) {
	subject := fmt.Sprintf("Your %s site is live", appName)
	body := fmt.Sprintf(`Hi %s,

Your portfolio site was generated and is available at:
%s

Every time you generate again you get a fresh snapshot at a new address.

Best,
The %s Team`, username, siteURL, appName)

	return subject, body
}
