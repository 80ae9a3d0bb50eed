package catalog

import (
	"context"

	"github.com/wajih79/kia-python-game/internal/domain"
)

// Catalog identifiers for the two game modes.
const (
	StandardID = "standard"
	PromptID   = "prompt"
)

// StaticLoader serves catalog content from an in-memory map. It backs the
// default deployment and the tests; swap in the Postgres loader to manage
// content outside the binary.
type StaticLoader struct {
	catalogs map[string][]domain.Round
}

func NewStaticLoader(catalogs map[string][]domain.Round) *StaticLoader {
	return &StaticLoader{catalogs: catalogs}
}

func (l *StaticLoader) LoadRounds(_ context.Context, catalogID string) ([]domain.Round, error) {
	rounds, ok := l.catalogs[catalogID]
	if !ok {
		return nil, domain.ErrCatalogNotFound
	}
	return rounds, nil
}

// DefaultContent is the built-in trading-themed game: five standard rounds
// of fill-in-the-code questions plus three prompt-challenge rounds.
func DefaultContent() map[string][]domain.Round {
	return map[string][]domain.Round{
		StandardID: standardRounds(),
		PromptID:   promptRounds(),
	}
}

func standardRounds() []domain.Round {
	return []domain.Round{
		{
			Number:        1,
			Title:         "Variables & Basic Math",
			Theme:         "Calculate Portfolio Returns",
			TimeLimitSecs: 300,
			Items: []domain.CatalogItem{
				{
					ID:       "1.1",
					Question: "KIA invested $500 million in a fund that returned 12%. Calculate the profit by multiplying investment by rate, then print it.",
					CodeTemplate: `initial_investment = 500000000
return_rate = 0.12

profit = ???

print(f"Profit: ${profit}")`,
					SolutionCode: `initial_investment = 500000000
return_rate = 0.12

profit = initial_investment * return_rate

print(f"Profit: ${profit}")`,
					ExpectedOutput: "Profit: $60000000.0",
					Points:         100,
				},
				{
					ID:       "1.2",
					Question: "A $100 million investment grows at 8% annually for 5 years with compound interest. Use the formula: Final = Principal x (1 + rate) ^ years",
					CodeTemplate: `principal = 100000000
rate = 0.08
years = 5

final_value = ???

print(f"Final Value: ${final_value:.2f}")`,
					SolutionCode: `principal = 100000000
rate = 0.08
years = 5

final_value = principal * (1 + rate) ** years

print(f"Final Value: ${final_value:.2f}")`,
					ExpectedOutput: "Final Value: $146932807.68",
					Points:         100,
					Hint:           "Use ** for exponent (power)",
				},
				{
					ID:       "1.3",
					Question: "BONUS: Calculate 15% of 2 million.",
					CodeTemplate: `result = ???

print(result)`,
					SolutionCode: `result = 2000000 * 0.15

print(result)`,
					ExpectedOutput: "300000.0",
					Points:         50,
					Hint:           "15% = 0.15",
					Bonus:          true,
				},
			},
		},
		{
			Number:        2,
			Title:         "Data Types & Strings",
			Theme:         "Format Investment Reports",
			TimeLimitSecs: 300,
			Items: []domain.CatalogItem{
				{
					ID:       "2.1",
					Question: "Format $750 billion with commas. In f-strings, use :, after the variable to add commas.",
					CodeTemplate: `aum = 750000000000

formatted = f"${aum:???}"

print(formatted)`,
					SolutionCode: `aum = 750000000000

formatted = f"${aum:,}"

print(formatted)`,
					ExpectedOutput: "$750,000,000,000",
					Points:         100,
				},
				{
					ID:       "2.2",
					Question: "Convert $1,000,000 USD to KWD (exchange rate: 0.31). Multiply USD by the rate.",
					CodeTemplate: `usd_amount = 1000000
exchange_rate = 0.31

kwd_amount = ???

print(f"{kwd_amount:,.2f} KWD")`,
					SolutionCode: `usd_amount = 1000000
exchange_rate = 0.31

kwd_amount = usd_amount * exchange_rate

print(f"{kwd_amount:,.2f} KWD")`,
					ExpectedOutput: "310,000.00 KWD",
					Points:         100,
				},
				{
					ID:       "2.3",
					Question: "BONUS: Print the data type name of the number 3.14.",
					CodeTemplate: `x = 3.14

print(???)`,
					SolutionCode: `x = 3.14

print(type(x).__name__)`,
					ExpectedOutput: "float",
					Points:         50,
					Hint:           "Use type(x).__name__ to get just the name",
					Bonus:          true,
				},
			},
		},
		{
			Number:        3,
			Title:         "Lists",
			Theme:         "Manage Stock Portfolios",
			TimeLimitSecs: 300,
			Items: []domain.CatalogItem{
				{
					ID:       "3.1",
					Question: "Get the last stock from the list. Use negative indexing: list[-1] gets the last item.",
					CodeTemplate: `stocks = ["Apple", "Microsoft", "Google", "Amazon", "NVIDIA"]

last_stock = stocks[???]

print(last_stock)`,
					SolutionCode: `stocks = ["Apple", "Microsoft", "Google", "Amazon", "NVIDIA"]

last_stock = stocks[-1]

print(last_stock)`,
					ExpectedOutput: "NVIDIA",
					Points:         100,
				},
				{
					ID:       "3.2",
					Question: "Calculate the total of all investments. Use the sum() function on the list.",
					CodeTemplate: `investments = [250, 180, 320, 150, 275]

total = ???

print(f"Total: ${total} million")`,
					SolutionCode: `investments = [250, 180, 320, 150, 275]

total = sum(investments)

print(f"Total: ${total} million")`,
					ExpectedOutput: "Total: $1175 million",
					Points:         100,
				},
				{
					ID:       "3.3",
					Question: "BONUS: Print how many items are in the list.",
					CodeTemplate: `numbers = [10, 20, 30, 40]

print(???)`,
					SolutionCode: `numbers = [10, 20, 30, 40]

print(len(numbers))`,
					ExpectedOutput: "4",
					Points:         50,
					Hint:           "Use len() to get the length",
					Bonus:          true,
				},
			},
		},
		{
			Number:        4,
			Title:         "Conditionals",
			Theme:         "Make Buy/Sell Decisions",
			TimeLimitSecs: 300,
			Items: []domain.CatalogItem{
				{
					ID:       "4.1",
					Question: `Complete the trading signal logic: "STRONG BUY" if return > 15%, "BUY" if > 5%, "HOLD" if > -5%, else "SELL".`,
					CodeTemplate: `return_rate = 8.5

if return_rate > 15:
    signal = "STRONG BUY"
elif ???:
    signal = "BUY"
elif ???:
    signal = "HOLD"
else:
    signal = "SELL"

print(f"Signal: {signal}")`,
					SolutionCode: `return_rate = 8.5

if return_rate > 15:
    signal = "STRONG BUY"
elif return_rate > 5:
    signal = "BUY"
elif return_rate > -5:
    signal = "HOLD"
else:
    signal = "SELL"

print(f"Signal: {signal}")`,
					ExpectedOutput: "Signal: BUY",
					Points:         100,
				},
				{
					ID:       "4.2",
					Question: `Determine risk: "MEDIUM-HIGH RISK" if volatility > 15 AND sector is "Tech". Use the "and" keyword.`,
					CodeTemplate: `volatility = 22
sector = "Tech"

if volatility > 30:
    risk = "HIGH RISK"
elif volatility > 15 ??? sector == "Tech":
    risk = "MEDIUM-HIGH RISK"
elif volatility > 15:
    risk = "MEDIUM RISK"
else:
    risk = "LOW RISK"

print(risk)`,
					SolutionCode: `volatility = 22
sector = "Tech"

if volatility > 30:
    risk = "HIGH RISK"
elif volatility > 15 and sector == "Tech":
    risk = "MEDIUM-HIGH RISK"
elif volatility > 15:
    risk = "MEDIUM RISK"
else:
    risk = "LOW RISK"

print(risk)`,
					ExpectedOutput: "MEDIUM-HIGH RISK",
					Points:         100,
				},
				{
					ID:       "4.3",
					Question: `BONUS: Approve if return > 0 AND risk is "LOW". Print "APPROVED" or "REJECTED".`,
					CodeTemplate: `return_rate = 7
risk_level = "LOW"

if ??? and ???:
    decision = "APPROVED"
else:
    decision = "REJECTED"

print(decision)`,
					SolutionCode: `return_rate = 7
risk_level = "LOW"

if return_rate > 0 and risk_level == "LOW":
    decision = "APPROVED"
else:
    decision = "REJECTED"

print(decision)`,
					ExpectedOutput: "APPROVED",
					Points:         50,
					Bonus:          true,
				},
			},
		},
		{
			Number:        5,
			Title:         "Loops & Functions",
			Theme:         "Analyze Multiple Assets",
			TimeLimitSecs: 300,
			Items: []domain.CatalogItem{
				{
					ID:       "5.1",
					Question: "Loop through stocks and print each one. Use: for item in list:",
					CodeTemplate: `stocks = ["Apple", "Google", "Amazon"]

??? stock ??? stocks:
    print(stock)`,
					SolutionCode: `stocks = ["Apple", "Google", "Amazon"]

for stock in stocks:
    print(stock)`,
					ExpectedOutput: "Apple\nGoogle\nAmazon",
					Points:         100,
				},
				{
					ID:       "5.2",
					Question: "Complete the function to calculate profit (principal x rate) and return the result.",
					CodeTemplate: `def calculate_profit(principal, rate):
    profit = ???
    return profit

result = calculate_profit(1000, 0.10)
print(f"Profit: ${result}")`,
					SolutionCode: `def calculate_profit(principal, rate):
    profit = principal * rate
    return profit

result = calculate_profit(1000, 0.10)
print(f"Profit: ${result}")`,
					ExpectedOutput: "Profit: $100.0",
					Points:         100,
				},
				{
					ID:       "5.3",
					Question: "BOSS CHALLENGE: Loop through portfolio, calculate each profit, and add to total_profit.",
					CodeTemplate: `portfolio = [
    ("Oil Fund", 2000, 12.5),
    ("Tech Fund", 1500, 18.3),
    ("Real Estate", 800, 4.2),
    ("Bonds", 1200, -2.1)
]

total_profit = 0
for name, investment, rate in portfolio:
    profit = ???
    total_profit = ???

print(f"Total Profit: ${total_profit:.1f} million")`,
					SolutionCode: `portfolio = [
    ("Oil Fund", 2000, 12.5),
    ("Tech Fund", 1500, 18.3),
    ("Real Estate", 800, 4.2),
    ("Bonds", 1200, -2.1)
]

total_profit = 0
for name, investment, rate in portfolio:
    profit = investment * (rate / 100)
    total_profit = total_profit + profit

print(f"Total Profit: ${total_profit:.1f} million")`,
					ExpectedOutput: "Total Profit: $532.9 million",
					Points:         150,
				},
			},
		},
	}
}

func promptRounds() []domain.Round {
	return []domain.Round{
		{
			Number:        1,
			Title:         "Speed Round",
			Theme:         "Prompt Your Way to Quick Wins",
			TimeLimitSecs: 300,
			ChallengeType: "speed",
			Items: []domain.CatalogItem{
				{
					ID:             "1.1",
					Question:       "Write a prompt that produces code printing the profit on a $500 million investment at a 12% return, formatted as 'Profit: $<amount>'.",
					ExpectedOutput: "Profit: $60000000.0",
					Points:         100,
					Hint:           "Tell the model the exact output format you need",
				},
				{
					ID:             "1.2",
					Question:       "Write a prompt that produces code printing the sum of the investments [250, 180, 320, 150, 275] as 'Total: $<sum> million'.",
					ExpectedOutput: "Total: $1175 million",
					Points:         100,
				},
			},
		},
		{
			Number:        2,
			Title:         "Efficiency Round",
			Theme:         "Shorter Prompts, Same Results",
			TimeLimitSecs: 300,
			ChallengeType: "efficiency",
			Items: []domain.CatalogItem{
				{
					ID:             "2.1",
					Question:       "Produce code that converts 1,000,000 USD to KWD at a rate of 0.31 and prints '<amount> KWD' with commas and two decimals.",
					ExpectedOutput: "310,000.00 KWD",
					Points:         100,
					Hint:           "Concise prompts earn a bigger bonus",
				},
				{
					ID:             "2.2",
					Question:       "Produce code that prints $750 billion formatted with thousands separators, prefixed with a dollar sign.",
					ExpectedOutput: "$750,000,000,000",
					Points:         100,
				},
			},
		},
		{
			Number:        3,
			Title:         "Debug Round",
			Theme:         "Fix It With Words",
			TimeLimitSecs: 300,
			ChallengeType: "debug",
			Items: []domain.CatalogItem{
				{
					ID:             "3.1",
					Question:       "The signal logic misclassifies an 8.5% return. Write a prompt that produces corrected code printing 'Signal: BUY' for returns above 5%.",
					ExpectedOutput: "Signal: BUY",
					Points:         100,
				},
				{
					ID:             "3.2",
					Question:       "A compound interest script prints the wrong total for $100M at 8% over 5 years. Prompt for a fixed version printing 'Final Value: $<amount>' with two decimals.",
					ExpectedOutput: "Final Value: $146932807.68",
					Points:         100,
					Hint:           "Mention the compound interest formula",
				},
			},
		},
	}
}
