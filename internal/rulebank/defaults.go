package rulebank

import (
	"go.uber.org/zap"

	"github.com/ayusharyakashyap/InvestShield/internal/models"
)

// DefaultVersion identifies the built-in rule table.
const DefaultVersion = "2025.08.1"

// defaultRules is the built-in rule table, tuned on the labelled post corpus.
// Operators can override it with an external YAML table without a code change.
var defaultRules = []Rule{
	// Guaranteed returns
	{ID: "gr_guarantee", Type: TypeRegex, Pattern: `guarantee[ds]?`, Category: models.GuaranteedReturns, Weight: 3.5},
	{ID: "gr_assured_returns", Type: TypePhrase, Pattern: "assured returns", Category: models.GuaranteedReturns, Weight: 4.0},
	{ID: "gr_risk_free", Type: TypeRegex, Pattern: `risk[- ]?free`, Category: models.GuaranteedReturns, Weight: 3.5},
	{ID: "gr_no_risk", Type: TypePhrase, Pattern: "no risk", Category: models.GuaranteedReturns, Weight: 3.0},
	{ID: "gr_sure_shot", Type: TypePhrase, Pattern: "sure shot", Category: models.GuaranteedReturns, Weight: 3.0},
	{ID: "gr_confirmed_profit", Type: TypeRegex, Pattern: `confirmed (?:profit|returns?)`, Category: models.GuaranteedReturns, Weight: 4.0},
	{ID: "gr_pct_return", Type: TypeRegex, Pattern: `\d+%\s*(?:profit|returns?|gains?)`, Category: models.GuaranteedReturns, Weight: 3.5},

	// Pressure tactics
	{ID: "pt_limited_time", Type: TypePhrase, Pattern: "limited time", Category: models.PressureTactics, Weight: 2.5},
	{ID: "pt_hurry", Type: TypePhrase, Pattern: "hurry", Category: models.PressureTactics, Weight: 2.0},
	{ID: "pt_act_now", Type: TypeRegex, Pattern: `act (?:fast|now)`, Category: models.PressureTactics, Weight: 2.5},
	{ID: "pt_last_chance", Type: TypePhrase, Pattern: "last chance", Category: models.PressureTactics, Weight: 2.5},
	{ID: "pt_urgent", Type: TypePhrase, Pattern: "urgent", Category: models.PressureTactics, Weight: 2.0},
	{ID: "pt_expires_soon", Type: TypeRegex, Pattern: `expires? (?:soon|today)`, Category: models.PressureTactics, Weight: 2.0},
	{ID: "pt_limited_slots", Type: TypeRegex, Pattern: `limited (?:slots?|seats?|spots?)`, Category: models.PressureTactics, Weight: 2.5},
	{ID: "pt_only_today", Type: TypePhrase, Pattern: "only today", Category: models.PressureTactics, Weight: 2.0},

	// Insider trading
	{ID: "it_insider_tip", Type: TypeRegex, Pattern: `insider (?:tip|info|information|knowledge|news)`, Category: models.InsiderTrading, Weight: 4.5},
	{ID: "it_insider", Type: TypePhrase, Pattern: "insider", Category: models.InsiderTrading, Weight: 3.0},
	{ID: "it_secret_tip", Type: TypeRegex, Pattern: `secret (?:tip|info|strategy|stock)`, Category: models.InsiderTrading, Weight: 4.0},
	{ID: "it_confidential", Type: TypePhrase, Pattern: "confidential", Category: models.InsiderTrading, Weight: 3.0},
	{ID: "it_inside_news", Type: TypePhrase, Pattern: "inside news", Category: models.InsiderTrading, Weight: 3.5},

	// Fake advisor claims
	{ID: "fa_sebi", Type: TypeRegex, Pattern: `sebi[- ](?:registered|approved|certified)`, Category: models.FakeAdvisorClaim, Weight: 3.5},
	{ID: "fa_government", Type: TypeRegex, Pattern: `government (?:approved|backed|endorsed)`, Category: models.FakeAdvisorClaim, Weight: 3.5},
	{ID: "fa_rbi", Type: TypeRegex, Pattern: `rbi (?:certified|approved|licensed)`, Category: models.FakeAdvisorClaim, Weight: 3.5},
	{ID: "fa_official_advisor", Type: TypePhrase, Pattern: "official advisor", Category: models.FakeAdvisorClaim, Weight: 3.0},
	{ID: "fa_certified_analyst", Type: TypePhrase, Pattern: "certified analyst", Category: models.FakeAdvisorClaim, Weight: 3.0},

	// Unrealistic promises
	{ID: "up_multiply_money", Type: TypeRegex, Pattern: `(?:double|triple|multiply) (?:your )?(?:money|wealth|returns?)`, Category: models.UnrealisticPromises, Weight: 4.5},
	{ID: "up_huge_pct", Type: TypeRegex, Pattern: `\d{3,}%\s*(?:profit|returns?|gains?)`, Category: models.UnrealisticPromises, Weight: 5.0},
	{ID: "up_overnight_rich", Type: TypeRegex, Pattern: `overnight (?:rich|wealth|millionaire)`, Category: models.UnrealisticPromises, Weight: 4.5},
	{ID: "up_instant_wealth", Type: TypePhrase, Pattern: "instant wealth", Category: models.UnrealisticPromises, Weight: 4.5},
	{ID: "up_crorepati", Type: TypeRegex, Pattern: `crorepati in (?:days|weeks|\d+)`, Category: models.UnrealisticPromises, Weight: 4.5},

	// Social proof manipulation
	{ID: "sm_join_thousands", Type: TypePhrase, Pattern: "join thousands", Category: models.SocialManipulation, Weight: 3.0},
	{ID: "sm_everyone_buying", Type: TypePhrase, Pattern: "everyone is buying", Category: models.SocialManipulation, Weight: 3.0},
	{ID: "sm_celebrities", Type: TypeRegex, Pattern: `celebrit(?:y|ies) invest`, Category: models.SocialManipulation, Weight: 3.0},
	{ID: "sm_rich_secret", Type: TypeRegex, Pattern: `(?:billionaire|millionaire) (?:secret|strategy)`, Category: models.SocialManipulation, Weight: 3.5},
	{ID: "sm_viral_stock", Type: TypePhrase, Pattern: "viral stock", Category: models.SocialManipulation, Weight: 2.5},

	// Contact solicitation
	{ID: "cs_join_group", Type: TypeRegex, Pattern: `join (?:our |my )?(?:whatsapp|telegram)`, Category: models.ContactScam, Weight: 3.5},
	{ID: "cs_whatsapp_now", Type: TypeRegex, Pattern: `whatsapp (?:me|now|immediately)`, Category: models.ContactScam, Weight: 3.0},
	{ID: "cs_call_now", Type: TypePhrase, Pattern: "call now", Category: models.ContactScam, Weight: 3.0},
	{ID: "cs_dm", Type: TypeRegex, Pattern: `dm (?:me|for|us)`, Category: models.ContactScam, Weight: 3.0},
	{ID: "cs_message_details", Type: TypePhrase, Pattern: "message for details", Category: models.ContactScam, Weight: 2.5},
	{ID: "cs_click", Type: TypeRegex, Pattern: `click (?:link|here)`, Category: models.ContactScam, Weight: 2.5},
	{ID: "cs_download_app", Type: TypePhrase, Pattern: "download app", Category: models.ContactScam, Weight: 2.5},
	{ID: "cs_register_now", Type: TypePhrase, Pattern: "register immediately", Category: models.ContactScam, Weight: 3.0},
}

// Default returns the built-in compiled rule bank.
func Default(logger *zap.Logger) *Bank {
	return New(DefaultVersion, defaultRules, logger)
}
