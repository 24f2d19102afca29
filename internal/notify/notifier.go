package notify

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/straye-as/cpq-api/internal/config"
	"github.com/straye-as/cpq-api/internal/domain"
	"github.com/straye-as/cpq-api/internal/render"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var emailTemplate = template.Must(template.ParseFS(templateFS, "templates/email.html"))

// Paths of the pages action links point at
const (
	ReviewPath   = "/approval/review"
	FeedbackPath = "/client/feedback"
)

type action struct {
	Label string
	URL   string
	Style string
}

type emailView struct {
	Subject       string
	Heading       string
	Greeting      string
	Paragraphs    []string
	Rows          [][2]string
	Comments      string
	CommentsLabel string
	Actions       []action
	HasAttachment bool
	Company       config.CompanyConfig
}

// envelope is one email addressed to one participant
type envelope struct {
	to     string
	role   domain.WorkflowRole
	view   emailView
	attach bool
	link   string
}

// Notifier composes and sends the emails of each workflow transition
type Notifier struct {
	mailer  Mailer
	links   *LinkSigner
	baseURL *BaseURLResolver
	company config.CompanyConfig
	logger  *zap.Logger
}

func NewNotifier(mailer Mailer, links *LinkSigner, baseURL *BaseURLResolver, company *config.CompanyConfig, logger *zap.Logger) *Notifier {
	n := &Notifier{
		mailer:  mailer,
		links:   links,
		baseURL: baseURL,
		logger:  logger,
	}
	if company != nil {
		n.company = *company
	}
	return n
}

// Ping checks the mail transport
func (n *Notifier) Ping(ctx context.Context) error {
	return n.mailer.Ping(ctx)
}

// NotifyWorkflowEvent sends the emails belonging to a workflow transition.
// A nil attachment sends text-only messages. Every recipient is attempted and
// delivery errors are joined into the returned error.
func (n *Notifier) NotifyWorkflowEvent(ctx context.Context, event domain.WorkflowEventType, wf *domain.Workflow, att *Attachment) error {
	var envelopes []envelope
	for _, env := range n.envelopesFor(event, wf) {
		if env.to != "" {
			envelopes = append(envelopes, env)
		}
	}
	if len(envelopes) == 0 {
		n.logger.Warn("No recipient for workflow notification",
			zap.String("event", string(event)),
			zap.String("workflow_id", wf.ID.String()),
		)
		return nil
	}

	var errs []error
	for _, env := range envelopes {
		if err := n.deliver(ctx, wf, env, att); err != nil {
			n.logger.Warn("Failed to send workflow notification",
				zap.String("event", string(event)),
				zap.String("workflow_id", wf.ID.String()),
				zap.String("to", env.to),
				zap.Error(err),
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NotifyCertificateIssued delivers the signature certificate to both signers
func (n *Notifier) NotifyCertificateIssued(ctx context.Context, wf *domain.Workflow, cert *domain.SignatureCertificate, att *Attachment) error {
	recipients := uniqueEmails(wf.CEOEmail, wf.ClientEmail)
	if len(recipients) == 0 {
		return nil
	}

	view := n.baseView(fmt.Sprintf("Signature Certificate: %s", cert.DocumentTitle), "Agreement fully signed")
	view.Greeting = "Hello,"
	view.Paragraphs = []string{
		"All parties have signed the agreement. The signature certificate is attached for your records.",
	}
	view.Rows = [][2]string{
		{"Reference", cert.ReferenceNumber},
		{"Document", cert.DocumentTitle},
		{"Client", cert.ClientName},
		{"Company", cert.CompanyName},
		{"Completed", cert.CompletionDate.UTC().Format("January 02, 2006 15:04 UTC")},
	}
	view.HasAttachment = att != nil

	msg, err := n.compose(recipients, view, att)
	if err != nil {
		return err
	}
	return n.mailer.Send(ctx, msg)
}

// QuoteEmail addresses a standalone quote email
type QuoteEmail struct {
	To            string
	RecipientName string
	CompanyName   string
	Quote         *domain.Quote
}

// SendQuote emails a quote with its PDF attached
func (n *Notifier) SendQuote(ctx context.Context, q QuoteEmail, att *Attachment) error {
	name := q.RecipientName
	if name == "" {
		name = q.Quote.Client.Name
	}
	company := q.CompanyName
	if company == "" {
		company = q.Quote.Client.Company
	}

	plans := q.Quote.Plans.Data()
	view := n.baseView(fmt.Sprintf("Your Migration Quote from %s", n.company.Name), "Your migration quote")
	view.Greeting = fmt.Sprintf("Dear %s,", orDefault(name, "Customer"))
	view.Paragraphs = []string{
		fmt.Sprintf("Thank you for your interest. Please find attached the quote prepared for %s.", orDefault(company, "your organization")),
		"The quote is valid for 30 days from the date of issue.",
	}
	view.Rows = [][2]string{
		{"Quote ID", q.Quote.ID.String()},
		{"Users", fmt.Sprintf("%d", q.Quote.Configuration.Users)},
		{"Migration type", string(q.Quote.Configuration.MigrationType)},
		{"Basic plan", render.FormatMoney(plans.Basic.TotalCost)},
		{"Standard plan", render.FormatMoney(plans.Standard.TotalCost)},
		{"Advanced plan", render.FormatMoney(plans.Advanced.TotalCost)},
	}
	view.HasAttachment = att != nil

	msg, err := n.compose([]string{q.To}, view, att)
	if err != nil {
		return err
	}
	return n.mailer.Send(ctx, msg)
}

func (n *Notifier) deliver(ctx context.Context, wf *domain.Workflow, env envelope, att *Attachment) error {
	view := env.view
	if env.link != "" {
		actions, err := n.actions(wf, env)
		if err != nil {
			return err
		}
		view.Actions = actions
	}

	var a *Attachment
	if env.attach {
		a = att
	}
	view.HasAttachment = a != nil

	msg, err := n.compose([]string{env.to}, view, a)
	if err != nil {
		return err
	}
	return n.mailer.Send(ctx, msg)
}

func (n *Notifier) compose(to []string, view emailView, att *Attachment) (Message, error) {
	var body bytes.Buffer
	if err := emailTemplate.ExecuteTemplate(&body, "email", view); err != nil {
		return Message{}, fmt.Errorf("failed to render email: %w", err)
	}
	msg := Message{To: to, Subject: view.Subject, HTML: body.String()}
	if att != nil && len(att.Data) > 0 {
		msg.Attachments = []Attachment{*att}
	}
	return msg, nil
}

func (n *Notifier) actions(wf *domain.Workflow, env envelope) ([]action, error) {
	token, err := n.links.Sign(wf.ID, env.role, env.to)
	if err != nil {
		return nil, err
	}
	base := n.baseURL.Resolve() + env.link
	link := func(decision string) string {
		v := url.Values{}
		v.Set("token", token)
		if decision != "" {
			v.Set("decision", decision)
		}
		return base + "?" + v.Encode()
	}

	if env.role == domain.RoleClient {
		return []action{
			{Label: "Accept", URL: link(string(domain.DecisionAccepted)), Style: "primary"},
			{Label: "Request changes", URL: link(string(domain.DecisionNeedsChanges)), Style: "secondary"},
			{Label: "View details", URL: link(""), Style: "primary"},
		}, nil
	}
	return []action{
		{Label: "Approve", URL: link("approve"), Style: "primary"},
		{Label: "Deny", URL: link("deny"), Style: "secondary"},
	}, nil
}

func (n *Notifier) baseView(subject, heading string) emailView {
	return emailView{Subject: subject, Heading: heading, Company: n.company}
}

func (n *Notifier) envelopesFor(event domain.WorkflowEventType, wf *domain.Workflow) []envelope {
	doc := documentLabel(wf)
	rows := workflowRows(wf)

	switch event {
	case domain.EventWorkflowStarted:
		return []envelope{n.reviewRequest(wf, domain.RoleManager, wf.ManagerEmail,
			fmt.Sprintf("Approval Required: %s", doc), "", "")}

	case domain.EventWorkflowResubmitted:
		envs := []envelope{n.reviewRequest(wf, domain.RoleManager, wf.ManagerEmail,
			fmt.Sprintf("Resubmitted for Approval: %s", doc), "", "")}
		if wf.CEOEmail != "" {
			v := n.baseView(fmt.Sprintf("Resubmitted: %s", doc), "Document resubmitted")
			v.Greeting = "Hello,"
			v.Paragraphs = []string{
				fmt.Sprintf("%s has been resubmitted (revision %d) and is back with the manager for review. You will be asked for approval once the manager has approved it.", doc, wf.ResubmitCount),
			}
			v.Rows = rows
			envs = append(envs, envelope{to: wf.CEOEmail, role: domain.RoleCEO, view: v})
		}
		return envs

	case domain.EventManagerApproved:
		return []envelope{n.reviewRequest(wf, domain.RoleCEO, wf.CEOEmail,
			fmt.Sprintf("CEO Approval Required: %s", doc), wf.ManagerComments, "Manager comments")}

	case domain.EventManagerDenied, domain.EventCEODenied:
		if wf.InitiatorEmail == "" {
			return nil
		}
		by, comments := "Manager", wf.ManagerComments
		if event == domain.EventCEODenied {
			by, comments = "CEO", wf.CEOComments
		}
		v := n.baseView(fmt.Sprintf("Denied: %s", doc), "Document denied")
		v.Greeting = "Hello,"
		v.Paragraphs = []string{
			fmt.Sprintf("%s was denied by the %s. The workflow has been cancelled and can be resubmitted after changes.", doc, by),
		}
		v.Rows = rows
		v.Comments = comments
		v.CommentsLabel = by + " comments"
		return []envelope{{to: wf.InitiatorEmail, view: v}}

	case domain.EventCEOApproved:
		if wf.ClientEmail == "" {
			return nil
		}
		v := n.baseView(fmt.Sprintf("Your Document is Ready: %s", doc), "Your document is ready")
		v.Greeting = fmt.Sprintf("Dear %s,", orDefault(wf.ClientName, "Customer"))
		v.Paragraphs = []string{
			"Your document has been reviewed and approved. Please review the attached document and let us know whether you accept it or need changes.",
		}
		v.Rows = rows
		return []envelope{{to: wf.ClientEmail, role: domain.RoleClient, view: v, attach: true, link: FeedbackPath}}

	case domain.EventClientFeedback:
		v := n.baseView(fmt.Sprintf("Client Feedback (%s): %s", humanizeDecision(wf.ClientStatus), doc), "Client feedback received")
		v.Greeting = "Hello,"
		v.Paragraphs = []string{clientFeedbackSummary(wf)}
		v.Rows = rows
		v.Comments = wf.ClientComments
		v.CommentsLabel = "Client comments"

		var envs []envelope
		for _, p := range []struct {
			role  domain.WorkflowRole
			email string
		}{{domain.RoleManager, wf.ManagerEmail}, {domain.RoleCEO, wf.CEOEmail}} {
			if p.email != "" {
				envs = append(envs, envelope{to: p.email, role: p.role, view: v})
			}
		}
		return envs

	case domain.EventWorkflowCancelled:
		recipients := uniqueEmails(wf.InitiatorEmail, wf.ManagerEmail)
		envs := make([]envelope, 0, len(recipients))
		for _, to := range recipients {
			v := n.baseView(fmt.Sprintf("Cancelled: %s", doc), "Workflow cancelled")
			v.Greeting = "Hello,"
			v.Paragraphs = []string{fmt.Sprintf("The approval workflow for %s has been cancelled.", doc)}
			v.Rows = rows
			v.Comments = wf.CancelReason
			v.CommentsLabel = "Reason"
			envs = append(envs, envelope{to: to, view: v})
		}
		return envs
	}
	return nil
}

func (n *Notifier) reviewRequest(wf *domain.Workflow, role domain.WorkflowRole, to, subject, comments, commentsLabel string) envelope {
	if to == "" {
		return envelope{}
	}
	v := n.baseView(subject, "Approval required")
	v.Greeting = "Hello,"
	v.Paragraphs = []string{
		fmt.Sprintf("%s requires your approval. Please review the attached document and approve or deny it using the buttons below.", documentLabel(wf)),
	}
	v.Rows = workflowRows(wf)
	v.Comments = comments
	v.CommentsLabel = commentsLabel
	return envelope{to: to, role: role, view: v, attach: true, link: ReviewPath}
}

func documentLabel(wf *domain.Workflow) string {
	if wf.DocumentName != "" {
		return wf.DocumentName
	}
	return fmt.Sprintf("%s for %s", wf.DocumentType, orDefault(wf.ClientName, "client"))
}

func workflowRows(wf *domain.Workflow) [][2]string {
	rows := [][2]string{
		{"Document", documentLabel(wf)},
		{"Type", string(wf.DocumentType)},
	}
	if wf.ClientName != "" {
		rows = append(rows, [2]string{"Client", wf.ClientName})
	}
	if wf.CompanyName != "" {
		rows = append(rows, [2]string{"Company", wf.CompanyName})
	}
	if wf.ServiceType != "" {
		rows = append(rows, [2]string{"Service", wf.ServiceType})
	}
	if wf.TotalAmount > 0 {
		rows = append(rows, [2]string{"Total amount", render.FormatMoney(wf.TotalAmount)})
	}
	return append(rows, [2]string{"Workflow ID", wf.ID.String()})
}

func clientFeedbackSummary(wf *domain.Workflow) string {
	client := orDefault(wf.ClientName, wf.ClientEmail)
	switch wf.ClientStatus {
	case domain.DecisionAccepted:
		return fmt.Sprintf("%s accepted %s. The workflow is complete.", client, documentLabel(wf))
	case domain.DecisionRejected:
		return fmt.Sprintf("%s rejected %s. The workflow can be resubmitted after changes.", client, documentLabel(wf))
	default:
		return fmt.Sprintf("%s requested changes to %s.", client, documentLabel(wf))
	}
}

func humanizeDecision(s domain.DecisionStatus) string {
	words := strings.Split(string(s), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func uniqueEmails(emails ...string) []string {
	seen := make(map[string]bool, len(emails))
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		key := strings.ToLower(strings.TrimSpace(e))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
