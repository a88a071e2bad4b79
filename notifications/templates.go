package notifications

import (
	"fmt"
	"html"
)

func WelcomeEmail(name string) (subject, body string) {
	return "Welcome to the mentorship community",
		fmt.Sprintf("<h1>Welcome, %s!</h1><p>Your account is ready. Browse mentors and send your first request.</p>",
			html.EscapeString(name))
}

// NotificationEmail mirrors an in-app notification; link may be empty.
func NotificationEmail(title, body, link string) (subject, content string) {
	content = fmt.Sprintf("<h1>%s</h1>", html.EscapeString(title))
	if body != "" {
		content += fmt.Sprintf("<p>%s</p>", html.EscapeString(body))
	}
	if link != "" {
		content += fmt.Sprintf("<p><a href='%s'>Open in the app</a></p>", html.EscapeString(link))
	}
	return title, content
}

func DigestEmail(name string, unread int64, link string) (subject, body string) {
	subject = fmt.Sprintf("You have %d unread notifications", unread)
	body = fmt.Sprintf("<p>Hi %s,</p><p>You have <b>%d</b> unread notifications waiting for you.</p><p><a href='%s'>Catch up now</a></p>",
		html.EscapeString(name), unread, html.EscapeString(link))
	return subject, body
}
