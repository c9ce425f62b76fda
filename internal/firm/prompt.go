package firm

import "fmt"

const identitySystemPrompt = "You are a helpful assistant that extracts structured data from FDA forms. Return only valid JSON."

const identityPromptTemplate = `Extract the firm name and FEI number from this FDA 483 form header text.

CRITICAL INSTRUCTIONS:
1. Firm Name:
   - Look for labels like "Firm Name:", "Legal Name:", "Establishment Name:", "Name of Firm:", "Company Name:"
   - Extract ONLY the business/company name - do NOT include addresses, cities, states, ZIP codes, or contact information
   - The firm name is typically a business entity name (5-150 characters)
   - Common suffixes: Inc, LLC, Ltd, Limited, Corporation, Corp, Company, Co, GmbH, Pharmaceuticals, Laboratories
   - If you see multiple lines, the firm name is usually the FIRST complete business name before any address

2. FEI Number:
   - Look for "FEI", "FEI Number", "FEI No", "FEI #", "FEI:", "FEI Number:" followed by digits
   - FEI numbers are typically 10 digits (sometimes 9-11 digits)
   - Extract ONLY the digits - no dashes, spaces, periods, or other characters
   - The number should be 9-11 digits long
   - It may appear as: FEI: 1234567890, FEI Number: 1234567890, FEI No. 1234567890

3. Search carefully - the information may be formatted differently or have extra spaces/characters.

4. If you cannot find clear, unambiguous information, return "Unknown" for firm and "N/A" for fei.

Header text (first 4000 characters):
%s

Return ONLY a JSON object with "firm" and "fei" fields.
- For firm: Return the complete business name (no addresses/contact info), or "Unknown" if not clearly found
- For fei: Return the FEI number as digits only (9-11 digits), or "N/A" if not clearly found

Return format: {"firm": "Complete Business Name Here", "fei": "1234567890"}`

// buildIdentityPrompt renders the extraction prompt for one header excerpt.
func buildIdentityPrompt(excerpt string) string {
	return fmt.Sprintf(identityPromptTemplate, excerpt)
}
