// Package scraper drives a headless or visible Chrome-family browser
// against the booking site, extracts flight offers from rendered pages, and
// degrades to a user-assisted manual mode when automated parsing fails.
package scraper

import (
	"encoding/json"
	"fmt"
)

// Shared text patterns the in-page scripts match against the site's Korean
// markup: a departure-arrival time range, a comma-grouped won amount, and an
// explicit layover count.
const (
	reTimeRange = `(\d{2}:\d{2})\s*-\s*(\d{2}:\d{2})`
	rePriceWon  = `(\d{1,3},\d{3},?\d{0,3})\s*원`
	reStops     = `(\d)회\s*경유`
)

// airlinesJSON renders the carrier roster as a JS array literal.
func airlinesJSON(airlines []string) string {
	b, err := json.Marshal(airlines)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// domesticListScript scans every button-like element for a time range plus a
// won amount, skipping promotional entries. Used both for the one-shot
// domestic price sweep and the scrolling leg collection.
func domesticListScript(airlines []string) string {
	return fmt.Sprintf(`
	() => {
		const results = [];
		const airlines = %s;
		const buttons = document.querySelectorAll('button');

		for (const btn of buttons) {
			try {
				const text = btn.textContent || '';

				const timeMatch = text.match(/%s/);
				if (!timeMatch) continue;

				const priceMatch = text.match(/%s/);
				if (!priceMatch) continue;

				const price = parseInt(priceMatch[1].replace(/[^\d]/g, ''));
				if (price < 1000 || price > 10000000) continue;
				if (text.includes('이벤트') || text.includes('프로모션')) continue;

				let airline = '기타';
				for (const a of airlines) {
					if (text.includes(a)) {
						airline = a;
						break;
					}
				}

				let stops = 0;
				if (text.includes('경유')) {
					const stopMatch = text.match(/%s/);
					stops = stopMatch ? parseInt(stopMatch[1]) : 1;
				}

				results.push({
					airline: airline,
					price: price,
					depTime: timeMatch[1],
					arrTime: timeMatch[2],
					stops: stops
				});
			} catch (e) { }
		}
		return results;
	}
	`, airlinesJSON(airlines), reTimeRange, rePriceWon, reStops)
}

// internationalScript reads indexed result cards: a price span, HH:MM time
// spans (four or more imply a round trip), a logo image for the carrier, and
// layover markers for stop counts.
func internationalScript() string {
	return fmt.Sprintf(`
	() => {
		const results = [];
		const cards = document.querySelectorAll('li[data-index]');

		for (const card of cards) {
			try {
				const allSpans = Array.from(card.querySelectorAll('span'));
				const priceEl = allSpans.find(el => /^[0-9,]+\s*원$/.test(el.textContent.trim()));
				if (!priceEl) continue;

				const price = parseInt(priceEl.textContent.replace(/[^0-9]/g, ''));

				const timeSpans = allSpans.filter(el => /^\d{2}:\d{2}$/.test(el.textContent.trim()));
				const times = timeSpans.map(el => el.textContent.trim());
				if (times.length < 2) continue;

				const logoImgs = card.querySelectorAll('img[alt$="로고"]');
				let airline = '기타';
				if (logoImgs.length > 0) {
					airline = logoImgs[0].alt.replace(' 로고', '');
				}

				const cardText = card.textContent;
				let stops = 0;
				let retStops = 0;
				const stopMatches = cardText.match(/%s/g);
				if (stopMatches) {
					stops = parseInt(stopMatches[0].replace(/[^0-9]/g, ''));
					retStops = (stopMatches.length > 1) ? parseInt(stopMatches[1].replace(/[^0-9]/g, '')) : stops;
				} else if (cardText.includes('직항')) {
					stops = 0; retStops = 0;
				} else {
					stops = 1; retStops = 1;
				}

				const isRoundTrip = times.length >= 4;

				results.push({
					airline: airline,
					price: price,
					depTime: times[0],
					arrTime: times[1],
					stops: stops,
					retDepTime: isRoundTrip ? times[2] : '',
					retArrTime: isRoundTrip ? times[3] : '',
					retStops: isRoundTrip ? retStops : 0,
					isRoundTrip: isRoundTrip
				});
			} catch (e) { }
		}
		return results;
	}
	`, reStops)
}

// internationalFallbackScript is the looser sweep run when the primary card
// selector yields nothing, accommodating minor markup drift.
func internationalFallbackScript() string {
	return fmt.Sprintf(`
	() => {
		const results = [];
		const candidates = document.querySelectorAll(
			'li[data-index], div[data-index], li[class*="result"], div[class*="result"], li[class*="ticket"], div[class*="ticket"]'
		);

		for (const card of candidates) {
			try {
				const text = card.textContent || '';
				const priceMatch = text.match(/%s/);
				if (!priceMatch) continue;
				const price = parseInt(priceMatch[1].replace(/[^0-9]/g, ''));

				const timeMatches = text.match(/%s/g) || [];
				const times = [];
				for (const t of timeMatches) {
					const parts = t.match(/%s/);
					if (parts && parts.length >= 3) {
						times.push(parts[1], parts[2]);
					}
				}
				if (times.length < 2) continue;

				let airline = '기타';
				const logoImgs = card.querySelectorAll('img[alt]');
				if (logoImgs.length > 0) {
					airline = logoImgs[0].alt.replace(' 로고', '').trim();
				}

				let stops = 0;
				let retStops = 0;
				const stopMatches = text.match(/%s/g);
				if (stopMatches) {
					stops = parseInt(stopMatches[0].replace(/[^0-9]/g, ''));
					retStops = (stopMatches.length > 1)
						? parseInt(stopMatches[1].replace(/[^0-9]/g, ''))
						: stops;
				} else if (text.includes('직항')) {
					stops = 0;
					retStops = 0;
				} else {
					stops = 1;
					retStops = 1;
				}

				const isRoundTrip = times.length >= 4;
				results.push({
					airline: airline,
					price: price,
					depTime: times[0],
					arrTime: times[1],
					stops: stops,
					retDepTime: isRoundTrip ? times[2] : '',
					retArrTime: isRoundTrip ? times[3] : '',
					retStops: retStops,
					isRoundTrip: isRoundTrip
				});
				if (results.length >= 300) break;
			} catch (e) { }
		}
		return results;
	}
	`, rePriceWon, reTimeRange, reTimeRange, reStops)
}

// clickFlightByDetailsScript clicks the button whose text matches a specific
// offer's airline, times, and formatted price. Returns whether a click fired.
func clickFlightByDetailsScript(airline, depTime, arrTime, priceText string) string {
	return fmt.Sprintf(`
	() => {
		const airline = %s;
		const dep = %s;
		const arr = %s;
		const priceText = %s;
		const buttons = document.querySelectorAll('button');
		for (const btn of buttons) {
			const text = btn.textContent || '';
			if (airline && !text.includes(airline)) continue;
			if (dep && !text.includes(dep)) continue;
			if (arr && !text.includes(arr)) continue;
			if (priceText && !text.includes(priceText)) continue;
			btn.click();
			return true;
		}
		return false;
	}
	`, jsString(airline), jsString(depTime), jsString(arrTime), jsString(priceText))
}

// clickFlightByPatternScript is the looser secondary heuristic: click any
// button carrying a roster airline together with time and price patterns.
func clickFlightByPatternScript(airlines []string) string {
	return fmt.Sprintf(`
	() => {
		const airlines = %s;
		const buttons = document.querySelectorAll('button');
		for (const btn of buttons) {
			const text = btn.textContent || '';
			if (/%s/.test(text) &&
				/[0-9,]+\s*원/.test(text) &&
				airlines.some(a => text.includes(a))) {
				btn.click();
				return true;
			}
		}
		return false;
	}
	`, airlinesJSON(airlines), reTimeRange)
}

// domesticResultsPresentScript reports whether at least one priced fare
// button has rendered.
func domesticResultsPresentScript() string {
	return fmt.Sprintf(`
	() => {
		const buttons = document.querySelectorAll('button');
		for (const btn of buttons) {
			const text = btn.textContent || '';
			if (/%s/.test(text) && /%s/.test(text)) return true;
		}
		return false;
	}
	`, reTimeRange, rePriceWon)
}

// internationalResultsPresentScript reports whether the indexed card list
// has rendered.
const internationalResultsPresentScript = `
	() => document.querySelectorAll('li[data-index]').length > 0
`

// returnViewReadyScript reports whether the domestic two-step flow has
// revealed the inbound panel: the page mentions the return-leg heading and
// at least five priced elements are rendered.
func returnViewReadyScript() string {
	return `
	() => {
		const bodyText = document.body?.innerText || '';
		const priceNodes = document.querySelectorAll('button, li, span');
		let priceCount = 0;
		for (const node of priceNodes) {
			const text = node.textContent || '';
			if (/\d{1,3}(,\d{3})+\s*원/.test(text)) {
				priceCount += 1;
				if (priceCount >= 5) break;
			}
		}
		return bodyText.includes('오는편') && priceCount >= 5;
	}
	`
}

// scrollCheckScript advances the window scroll (or an inner results
// container once the window bottoms out) and reports whether anything moved
// and whether the true bottom has been reached.
const scrollCheckScript = `
	() => {
		const beforeScroll = window.scrollY;
		const beforeHeight = document.body.scrollHeight;

		const totalHeight = document.body.scrollHeight;
		const currentScroll = window.scrollY + window.innerHeight;
		const isAtBottom = (totalHeight - currentScroll) <= 5;

		if (!isAtBottom) {
			window.scrollBy(0, 500);
		} else {
			const containers = [
				document.querySelector('div[scrollable="true"]'),
				document.querySelector('[class*="flightList"]'),
				document.querySelector('[class*="resultList"]'),
				document.querySelector('div[style*="overflow"]'),
			];

			for (const container of containers) {
				if (container && container.scrollHeight > container.clientHeight) {
					const containerAtBottom = (container.scrollHeight - container.scrollTop - container.clientHeight) <= 5;
					if (!containerAtBottom) {
						container.scrollTop += 500;
						break;
					}
				}
			}
		}

		const afterScroll = window.scrollY;
		const afterHeight = document.body.scrollHeight;
		const canScroll = (afterScroll !== beforeScroll) || (afterHeight !== beforeHeight);

		const finalTotalHeight = document.body.scrollHeight;
		const finalCurrentScroll = window.scrollY + window.innerHeight;
		const reachedBottom = (finalTotalHeight - finalCurrentScroll) <= 5;

		return {
			canScroll: canScroll,
			reachedBottom: reachedBottom && !canScroll
		};
	}
`

// scrollToBottomScript jumps the window to the page bottom, triggering the
// international list's lazy loading.
const scrollToBottomScript = `window.scrollTo(0, document.body.scrollHeight)`

// pageHeightScript reads the current document height, used for the
// international convergence check.
const pageHeightScript = `document.body.scrollHeight`

// jsString renders a Go string as a JS string literal.
func jsString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}
