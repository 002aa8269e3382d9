package email

// SendTemplateEmail sends template t to a single recipient.
//
// The recipient address is the only variable templates receive.
func (c *Client) SendTemplateEmail(to string, t Template) error {
	data := map[string]string{
		"Email": to,
	}

	return c.SendEmail(to, t.Subject(), t, data)
}
