// internal/app/system/seeding/catalog.go
package seeding

import "github.com/dalemusser/rightonrepair/internal/domain/models"

func starterServices() []models.Service {
	pro := func(order int, slug, title, icon, desc string, featured bool) models.Service {
		return models.Service{
			Slug: slug, Title: title, Description: desc, IconClass: icon,
			ServiceType: models.ServiceTypeProfessional, IsFeatured: featured,
			SortOrder: order, WorkflowStatus: models.WorkflowPublished,
		}
	}
	repair := func(order int, slug, title, icon, desc string, featured bool) models.Service {
		return models.Service{
			Slug: slug, Title: title, Description: desc, IconClass: icon,
			ServiceType: models.ServiceTypeRepair, IsFeatured: featured,
			SortOrder: order, WorkflowStatus: models.WorkflowPublished,
		}
	}

	return []models.Service{
		pro(10, "managed-it-services", "Managed IT Services", "fa-solid fa-network-wired",
			"Proactive monitoring, patching and help desk support for Orange County businesses.", true),
		pro(20, "cybersecurity", "Cybersecurity", "fa-solid fa-lock",
			"Threat defense, endpoint hardening and security awareness for teams of every size.", true),
		pro(30, "cloud-solutions", "Cloud Solutions", "fa-solid fa-cloud",
			"Migration, management and cost control across AWS, Azure and Google Cloud.", true),
		pro(40, "software-development", "Software & Web Development", "fa-solid fa-code",
			"Custom web applications, integrations and websites built for your workflows.", false),
		pro(50, "enterprise-consultancy", "Enterprise Consultancy", "fa-solid fa-handshake",
			"Technology roadmaps, vendor selection and strategic advisory for growing organizations.", false),
		repair(10, "desktop-repair", "Desktop Repair", "fa-solid fa-desktop",
			"Diagnostics, part replacement and performance tuning for desktop computers.", true),
		repair(20, "phone-tablet-repair", "Phone & Tablet Repair", "fa-solid fa-mobile-screen",
			"Screen, battery and charging port repair for phones and tablets.", true),
		repair(30, "data-recovery", "Data Recovery", "fa-solid fa-hard-drive",
			"Recovery of files from failed drives, damaged devices and accidental deletion.", false),
		repair(40, "virus-removal", "Virus & Malware Removal", "fa-solid fa-shield-virus",
			"Malware cleanup, system restoration and protection setup.", false),
	}
}

func starterIndustries() []models.Industry {
	ind := func(order int, slug, title, icon, desc string) models.Industry {
		return models.Industry{
			Slug: slug, Title: title, Description: desc, IconClass: icon,
			SortOrder: order, WorkflowStatus: models.WorkflowPublished,
		}
	}

	healthcare := ind(10, "healthcare-clinics", "Healthcare Clinics", "fa-solid fa-hospital",
		"HIPAA-aware IT support that keeps intake, charting and EHR systems running.")
	healthcare.Challenges = []string{
		"Downtime during intake and charting",
		"Shared workstations with weak controls",
		"Aging clinical endpoints",
		"EHR vendor complexity",
		"HIPAA security pressure",
	}
	healthcare.Solutions = []string{
		"Role-based access and MFA",
		"Endpoint hardening and patching",
		"EHR workflow support",
		"Backup and recovery planning",
		"Documented escalation playbooks",
	}

	law := ind(20, "law-firms", "Law Firms", "fa-solid fa-scale-balanced",
		"Confidential document workflows and secure remote access for legal teams.")
	law.Challenges = []string{
		"Case document bottlenecks",
		"Risky file sharing practices",
		"Unmanaged remote access",
		"Weak backup visibility",
		"Phishing exposure",
	}
	law.Solutions = []string{
		"Access-controlled document workflows",
		"Endpoint and identity hardening",
		"Secure remote collaboration",
		"Backup validation and continuity",
		"Priority deadline support",
	}

	return []models.Industry{
		healthcare,
		law,
		ind(30, "construction-field-services", "Construction & Field Services", "fa-solid fa-helmet-safety",
			"Rugged device support and reliable connectivity between the office and the jobsite."),
		ind(40, "manufacturing", "Manufacturing", "fa-solid fa-industry",
			"Monitoring and maintenance planned around production schedules."),
		ind(50, "retail-ecommerce", "Retail & eCommerce", "fa-solid fa-store",
			"Stable POS, secure payments and visibility across every location."),
		ind(60, "professional-services", "Professional Services", "fa-solid fa-briefcase",
			"Cloud collaboration and automated onboarding for client-facing firms."),
		ind(70, "nonprofits", "Nonprofits", "fa-solid fa-hand-holding-heart",
			"Right-sized managed IT that protects donor data on a nonprofit budget."),
		ind(80, "real-estate-property-management", "Real Estate & Property Management", "fa-solid fa-building",
			"Mobile device management and wire fraud prevention for agents and property teams."),
	}
}

func starterCategories() []models.Category {
	return []models.Category{
		{Slug: "cybersecurity", Name: "Cybersecurity"},
		{Slug: "managed-it", Name: "Managed IT"},
		{Slug: "device-repair", Name: "Device Repair"},
		{Slug: "tips-guides", Name: "Tips & Guides"},
	}
}

func starterPages() []models.CMSPage {
	return []models.CMSPage{
		{
			Slug:  "privacy-policy",
			Title: "Privacy Policy",
			Content: `<h2>Privacy Policy</h2>
<p>This page should contain your Privacy Policy. Update it in the cms_pages collection.</p>
<ul>
<li>What information is collected through the contact, quote and support forms</li>
<li>How that information is used and protected</li>
<li>Cookie policy</li>
<li>Contact information for privacy concerns</li>
</ul>`,
			MetaDescription: "How Right On Repair collects, uses and protects your information.",
			IsPublished:     true,
		},
		{
			Slug:  "terms-of-service",
			Title: "Terms of Service",
			Content: `<h2>Terms of Service</h2>
<p>This page should contain your Terms of Service. Update it in the cms_pages collection.</p>
<ul>
<li>Service descriptions and scope</li>
<li>Repair warranties and limitations</li>
<li>Limitation of liability</li>
<li>Governing law</li>
</ul>`,
			MetaDescription: "Terms governing Right On Repair services and this website.",
			IsPublished:     true,
		},
	}
}
